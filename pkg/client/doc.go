// Package client provides network client helpers.
//
//   - netretry: Transient network error classification and backoff delays
package client
