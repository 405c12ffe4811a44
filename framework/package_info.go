// Package framework contains the low-level test harness infrastructure that is not
// specific to the Books API: a test context similar to Go's *testing.T, regex-based
// test filtering, result accumulation, and debug log capturing.
//
// The general model is:
//
// 1. The test harness communicates over HTTP with a remote service that is the subject
// under test. The framework knows nothing about that service; the domain-specific
// packages provide the API client and the test logic.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results. Assertion libraries that accept a testing.T-like
// value (Errorf + FailNow) work against it.
//
// 3. Each test can write debug output which is captured and only shown according to
// the test logger's configuration, so a normal run stays readable.
package framework
