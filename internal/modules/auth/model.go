package auth

// Role of the authenticated user.
type Role string

const (
	RoleSeller Role = "vendedor"
	RoleAdmin  Role = "admin"
)

// User is the normalized identity extracted from a login response.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session pairs the user with the opaque bearer credential. One session slot
// exists per device; saving overwrites the previous occupant.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Kind is the fixed taxonomy every authentication failure maps to.
type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUserNotRegistered  Kind = "user_not_registered"
	KindUnauthorized       Kind = "unauthorized"
	KindConnection         Kind = "connection_error"
	KindServer             Kind = "server_error"
)

// Error is a classified authentication failure. Message is the single line
// shown to the user.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Fixed user-facing messages. The backend's own wording is overridden where
// the classification dictates.
const (
	msgConnection        = "Error de conexión. Verifica tu conexión a internet."
	msgNotRegistered     = "Este email no está registrado en el sistema"
	msgBadCredentials    = "Email o contraseña incorrectos"
	msgCredentialsFailed = "Credenciales incorrectas"
	msgUnauthorized      = "No autorizado"
	msgRequestFailed     = "Error en la solicitud"
	msgEndpointNotFound  = "Endpoint no encontrado"
	msgServerError       = "Error interno del servidor"
	msgTokenMissing      = "Token no recibido del servidor"
	msgDefaultUserName   = "Usuario"
)
