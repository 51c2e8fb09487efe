// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors classifies request failures and presents them to the user.
package httperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "userportal/cli/internal/errors"
	"userportal/cli/internal/logging"
)

// Class is the refined category of a transport failure.
type Class int

const (
	ClassOther Class = iota
	ClassTimeout
	ClassDNS
	ClassConnectionRefused
	ClassConnectionReset
	ClassTLS
	ClassCanceled
)

func (c Class) String() string {
	switch c {
	case ClassTimeout:
		return "timeout"
	case ClassDNS:
		return "dns"
	case ClassConnectionRefused:
		return "connection_refused"
	case ClassConnectionReset:
		return "connection_reset"
	case ClassTLS:
		return "tls"
	case ClassCanceled:
		return "canceled"
	default:
		return "other"
	}
}

// Classify inspects a transport error. The order matters: a DNS lookup that
// times out is reported as DNS.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassOther
	case errors.Is(err, context.Canceled):
		return ClassCanceled
	case isDNSError(err):
		return ClassDNS
	case isTimeoutError(err):
		return ClassTimeout
	case isConnectionRefusedError(err):
		return ClassConnectionRefused
	case isConnectionResetError(err):
		return ClassConnectionReset
	case isSSLError(err):
		return ClassTLS
	default:
		return ClassOther
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
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

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isConnectionResetError(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection reset") || strings.Contains(errStr, "eof")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "ssl") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// Present prints a user-friendly description of err. action completes the
// sentence "... while <action>", e.g. "logging in".
func Present(err error, action string) {
	if err == nil {
		return
	}

	switch apperrors.KindOf(err) {
	case apperrors.Transport:
		presentTransport(Classify(err), action)
	case apperrors.AuthExpired:
		pterm.Warning.Printf("Your session has expired while %s\n", action)
		pterm.Println("   Run 'userportal login' to sign in again.")
	case apperrors.Server:
		pterm.Error.Printf("The server rejected the request while %s\n", action)
		if code := apperrors.CodeOf(err); code != 0 {
			pterm.Printf("   Code: %d\n", code)
		}
	case apperrors.Config:
		pterm.Error.Printf("Invalid configuration: %v\n", err)
		pterm.Println("   Run 'userportal config show' to inspect the active settings.")
		return
	default:
		pterm.Error.Printf("Something went wrong while %s\n", action)
	}
	pterm.Debug.Printf("Technical details: %s\n", logging.Describe(action, err, 200))
}

func presentTransport(class Class, action string) {
	switch class {
	case ClassTimeout:
		pterm.Printf("⏱️  Connection timeout while %s\n", action)
		pterm.Println("The server took too long to respond. Please try again in a few moments.")
	case ClassDNS:
		pterm.Printf("🌐 Cannot resolve server address while %s\n", action)
		pterm.Println("Check your internet connection and the configured base URL.")
	case ClassConnectionRefused:
		pterm.Printf("🚫 Connection refused while %s\n", action)
		pterm.Println("The server is not accepting connections. Is it running at the configured base URL?")
	case ClassConnectionReset:
		pterm.Printf("🔌 Connection dropped while %s\n", action)
		pterm.Println("The server closed the connection unexpectedly. Please try again.")
	case ClassTLS:
		pterm.Printf("🔒 Secure connection failed while %s\n", action)
		pterm.Println("Check the server certificate, proxy settings and your system clock.")
	case ClassCanceled:
		pterm.Printf("Canceled while %s\n", action)
	default:
		pterm.Printf("❌ Cannot reach the server while %s\n", action)
	}
	pterm.Println()
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
