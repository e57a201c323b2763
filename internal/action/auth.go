package action

import "clinic-console-api/internal/model"

type LoginRequest struct {
	intent
	Credentials model.Credentials
}

type LoginSuccess struct {
	success
	Meta
	Session model.Session
}

type LoginFailure struct {
	failure
	Meta
	Err string
}

type LogoutRequest struct{ intent }

type LogoutSuccess struct {
	success
	Meta
}

type ValidateTokenRequest struct {
	intent
	Token string
}

type ValidateTokenSuccess struct {
	success
	Meta
	User model.User
}

type ValidateTokenFailure struct {
	failure
	Meta
	Err string
}

// SessionRestored marks a session read back from storage at start-up.
type SessionRestored struct {
	plain
	Session model.Session
}

type SetToken struct {
	plain
	Token string
}

type ClearAuthError struct{ plain }

func (LoginRequest) Type() string         { return "auth/loginRequest" }
func (LoginSuccess) Type() string         { return "auth/loginSuccess" }
func (LoginFailure) Type() string         { return "auth/loginFailure" }
func (LogoutRequest) Type() string        { return "auth/logoutRequest" }
func (LogoutSuccess) Type() string        { return "auth/logoutSuccess" }
func (ValidateTokenRequest) Type() string { return "auth/validateTokenRequest" }
func (ValidateTokenSuccess) Type() string { return "auth/validateTokenSuccess" }
func (ValidateTokenFailure) Type() string { return "auth/validateTokenFailure" }
func (SessionRestored) Type() string      { return "auth/sessionRestored" }
func (SetToken) Type() string             { return "auth/setToken" }
func (ClearAuthError) Type() string       { return "auth/clearError" }

func (a LoginFailure) Message() string         { return a.Err }
func (a ValidateTokenFailure) Message() string { return a.Err }
