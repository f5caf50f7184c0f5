package model

// CredentialMode selects the submission flow.
type CredentialMode string

const (
	ModeSignIn CredentialMode = "sign-in"
	ModeSignUp CredentialMode = "sign-up"
)

// CredentialForm is the transient input state of one submission attempt.
type CredentialForm struct {
	Email    string
	Password string
	Mode     CredentialMode
}
