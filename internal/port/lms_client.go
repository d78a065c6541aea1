package port

import "context"

// LMSClient is the outbound port to the Moodle web services.
// *moodle.Client implements it.
type LMSClient interface {
	// FetchToken exchanges Moodle credentials for a web-service token.
	FetchToken(ctx context.Context, username, password string) (string, error)
	// Call invokes a web-service function and decodes the result into out.
	Call(ctx context.Context, token, function string, params map[string]string, out any) error
}
