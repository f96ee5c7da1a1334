package main

import "pdfdesk/internal/app"

// @title                       pdfdesk API
// @version                     1.0
// @description                 Accounts with e-mail OTP verification and PDF documents.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.Run()
}
