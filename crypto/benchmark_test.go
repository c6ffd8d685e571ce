package crypto

import "testing"

func BenchmarkGenerateBoxKeyPair(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GenerateBoxKeyPair(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateNonce(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := GenerateNonce(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSealAfterPrecomputation(b *testing.B) {
	sender, err := GenerateBoxKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	receiver, err := GenerateBoxKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	key := Precompute(receiver.Public, sender.Private)

	message := []byte("This is a benchmark test message for sealing performance")
	nonce, err := GenerateNonce()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SealAfterPrecomputation(message, nonce, key)
	}
}

func BenchmarkOpenAfterPrecomputation(b *testing.B) {
	sender, err := GenerateBoxKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	receiver, err := GenerateBoxKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	sealKey := Precompute(receiver.Public, sender.Private)
	openKey := Precompute(sender.Public, receiver.Private)

	message := []byte("This is a benchmark test message for opening performance")
	nonce, err := GenerateNonce()
	if err != nil {
		b.Fatal(err)
	}
	ciphertext := SealAfterPrecomputation(message, nonce, sealKey)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := OpenAfterPrecomputation(ciphertext, nonce, openKey); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign(b *testing.B) {
	keyPair, err := GenerateSigningKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("This is a benchmark test message for signing performance")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Sign(message, keyPair.Private); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	keyPair, err := GenerateSigningKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("This is a benchmark test message for verification performance")
	signature, err := Sign(message, keyPair.Private)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Verify(message, signature, keyPair.Public); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHash(b *testing.B) {
	message := []byte("This is a benchmark test message for hashing performance")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Hash(message)
	}
}
