// Package rpc defines the processor contract shared by the server and
// client engines: a Processor maps one request message to one reply
// message, and a ProcessorFactory produces one Processor per aio context
// so state is never shared across workers.
package rpc
