/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	AppName        = "chessvalidate"
	DefaultCache   = "chessvalidate-webcache"
	ConfigFileName = "chessvalidate"
	EnvPrefix      = "CHESSVALIDATE"
)

// UserAgent is sent on every remote fetch.
var UserAgent = AppName + "/" + Version().Core() + " (+https://github.com/mikeb26/chessvalidate)"
