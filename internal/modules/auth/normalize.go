package auth

import (
	"net/http"
	"strings"
)

// Phrase patterns recognized in backend error messages. The backend answers
// in a mix of Spanish and English, so both vocabularies are matched.
var (
	notRegisteredPhrases = []string{
		"no encontrado",
		"not found",
		"no existe",
		"no registrado",
		"usuario no encontrado",
		"user not found",
	}
	notRegisteredCodes = []string{"USER_NOT_FOUND", "NOT_FOUND"}

	badCredentialPhrases = []string{
		"incorrect",
		"invalid",
		"wrong",
		"credenciales",
		"contraseña",
		"password",
	}
	badCredentialCodes = []string{"INVALID_CREDENTIALS", "UNAUTHORIZED"}

	// A backend message is passed through to the user only when it already
	// names the credential in the user's vocabulary; anything else is
	// replaced with the fixed message.
	passThroughWords = []string{"email", "contraseña", "credenciales"}
)

// normalize classifies a login exchange into a session or one of the fixed
// failure kinds. transportErr is any failure before a response was received.
// The rules apply in order; the first match wins.
func normalize(res *result, transportErr error, email string) (*Session, *Error) {
	if transportErr != nil {
		return nil, &Error{Kind: KindConnection, Message: msgConnection}
	}

	p := res.payload
	ok := res.status >= 200 && res.status < 300

	if !ok {
		// Some backends answer 401 for an informational status while still
		// carrying a usable credential; treat that as success.
		if res.status == http.StatusUnauthorized && hasCredential(p) {
			return extractSession(p, email)
		}
		return nil, classifyFailure(res.status, p)
	}

	// An OK status can still be a refusal.
	if (p.Success != nil && !*p.Success) || p.ErrorMsg != "" {
		return nil, &Error{
			Kind:    KindInvalidCredentials,
			Message: firstNonEmpty(p.Message, p.ErrorMsg, msgCredentialsFailed),
			Status:  res.status,
		}
	}
	return extractSession(p, email)
}

func classifyFailure(status int, p payload) *Error {
	message := firstNonEmpty(p.Message, p.ErrorMsg, p.ErrorMessage, p.Detail, http.StatusText(status), msgRequestFailed)
	code := firstNonEmpty(p.Code, p.ErrorCode)
	lower := strings.ToLower(message)

	if status == http.StatusNotFound || containsAny(lower, notRegisteredPhrases) || codeMatches(code, notRegisteredCodes) {
		return &Error{Kind: KindUserNotRegistered, Message: msgNotRegistered, Status: status}
	}

	// Every 401 that did not carry a credential is a login refusal, whatever
	// the backend wording.
	if status == http.StatusUnauthorized || containsAny(lower, badCredentialPhrases) || codeMatches(code, badCredentialCodes) {
		if !containsAny(lower, passThroughWords) {
			message = msgBadCredentials
		}
		return &Error{Kind: KindInvalidCredentials, Message: message, Status: status}
	}

	if status == http.StatusInternalServerError {
		message = firstNonEmpty(p.Message, p.ErrorMsg, p.ErrorMessage, p.Detail, msgServerError)
	}
	return &Error{Kind: KindServer, Message: message, Status: status}
}

// extractSession builds the one internal session shape out of whichever
// fields the backend chose to use.
func extractSession(p payload, email string) (*Session, *Error) {
	token := firstNonEmpty(p.Token, p.AccessToken, p.JWT)
	if token == "" {
		if p.Success != nil && *p.Success {
			return nil, &Error{Kind: KindServer, Message: msgTokenMissing}
		}
		return nil, &Error{
			Kind:    KindInvalidCredentials,
			Message: firstNonEmpty(p.Message, p.ErrorMsg, msgCredentialsFailed),
		}
	}

	var u userPayload
	if p.User != nil {
		u = *p.User
	} else if p.Data != nil {
		u = *p.Data
	}

	user := User{
		ID:    firstNonEmpty(u.ID, email),
		Email: firstNonEmpty(u.Email, email),
		Name:  firstNonEmpty(u.Name, emailLocalPart(email), msgDefaultUserName),
		Role:  u.Role,
	}
	if user.Role == "" {
		user.Role = RoleSeller
	}
	return &Session{Token: token, User: user}, nil
}

func hasCredential(p payload) bool {
	return p.Token != "" || p.AccessToken != "" || p.JWT != "" || p.User != nil || p.Data != nil
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return ""
}

func containsAny(s string, phrases []string) bool {
	for _, ph := range phrases {
		if strings.Contains(s, ph) {
			return true
		}
	}
	return false
}

func codeMatches(code string, wanted []string) bool {
	if code == "" {
		return false
	}
	for _, w := range wanted {
		if strings.Contains(code, w) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
