// Package mail delivers verification emails over SMTP, using implicit TLS
// (port 465) or STARTTLS when the server offers it.
package mail
