package authform

import "github.com/tinywasm/fmt"

var (
	ErrInvalidCredentials = fmt.Err("access", "denied")     // EN: Access Denied        / ES: Acceso Denegado
	ErrSuspended          = fmt.Err("user", "suspended")    // EN: User Suspended       / ES: Usuario Suspendido
	ErrEmailTaken         = fmt.Err("email", "registered")  // EN: Email Registered     / ES: Correo electrónico Registrado
	ErrWeakPassword       = fmt.Err("password", "weak")     // EN: Password Weak        / ES: Contraseña Débil
	ErrPasswordTooLong    = fmt.Err("password", "long")     // EN: Password Long        / ES: Contraseña Larga
	ErrSessionExpired     = fmt.Err("token", "expired")     // EN: Token Expired        / ES: Token Expirado
	ErrNotFound           = fmt.Err("user", "not", "found") // EN: User Not Found       / ES: Usuario No Encontrado
	ErrNotAuthenticated   = fmt.Err("session", "required")  // EN: Session Required     / ES: Sesión Requerida
	ErrCSRF               = fmt.Err("token", "invalid")     // EN: Token Invalid        / ES: Token Inválido
	ErrTransport          = fmt.Err("network", "error")     // EN: Network Error        / ES: Error de Red
	ErrFormNotFound       = fmt.Err("form", "not", "found") // EN: Form Not Found       / ES: Formulario No Encontrado
)
