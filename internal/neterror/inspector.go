// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package neterror

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Kinds returned by Classify.
const (
	KindDNS     = "dns"
	KindTimeout = "timeout"
	KindRefused = "refused"
	KindTLS     = "tls"
	KindOther   = "other"
)

// Inspector defines methods for classifying transport errors.
type Inspector interface {
	// IsDNSError returns true if the host name could not be resolved.
	IsDNSError(err error) bool

	// IsTimeoutError returns true if the request timed out or its deadline passed.
	IsTimeoutError(err error) bool

	// IsConnectionRefused returns true if the remote end refused the connection.
	IsConnectionRefused(err error) bool

	// IsTLSError returns true if the TLS handshake or certificate validation failed.
	IsTLSError(err error) bool
}

// TransportInspector implements Inspector by walking the error chain first and
// falling back to the error text.
type TransportInspector struct{}

// NewInspector creates a new TransportInspector.
func NewInspector() Inspector {
	return &TransportInspector{}
}

// IsDNSError checks if the error is a name resolution failure.
func (i *TransportInspector) IsDNSError(err error) bool {
	if err == nil {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "temporary failure in name resolution")
}

// IsTimeoutError checks if the error is a timeout.
func (i *TransportInspector) IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsConnectionRefused checks if the connection was refused.
func (i *TransportInspector) IsConnectionRefused(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// IsTLSError checks if the error came from the TLS layer.
func (i *TransportInspector) IsTLSError(err error) bool {
	if err == nil {
		return false
	}
	var (
		recordErr    tls.RecordHeaderError
		unknownAuth  x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		certInvalid  x509.CertificateInvalidError
		verification *tls.CertificateVerificationError
	)
	if errors.As(err, &recordErr) || errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) || errors.As(err, &certInvalid) ||
		errors.As(err, &verification) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

// Classify returns the kind of a transport error. DNS is checked before
// timeout because resolver timeouts surface as *net.DNSError.
func Classify(err error) string {
	i := NewInspector()
	switch {
	case err == nil:
		return ""
	case i.IsDNSError(err):
		return KindDNS
	case i.IsConnectionRefused(err):
		return KindRefused
	case i.IsTimeoutError(err):
		return KindTimeout
	case i.IsTLSError(err):
		return KindTLS
	default:
		return KindOther
	}
}
