// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 目前包含基於 JWT 的身份驗證中間件，
// 用於保護需要登入後才能訪問的路由。
package middleware
