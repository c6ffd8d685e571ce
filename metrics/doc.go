// Package metrics declares the Prometheus collectors the server and
// client engines update. Collectors are always registered against a
// caller-supplied registry rather than prometheus.DefaultRegisterer, so an
// embedding application controls exposition and so tests can use an
// isolated registry per case.
package metrics
