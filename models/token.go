package models

// AuthToken is an informational record of an issued login token. Verification
// is stateless; the record only exists so issued tokens can be inspected.
// ExpiresAt is an epoch-seconds DynamoDB TTL attribute set one hour after
// issuance.
type AuthToken struct {
	Token     string `dynamodbav:"token" json:"token"`
	Nickname  string `dynamodbav:"nickname" json:"nickname"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	ExpiresAt int64  `dynamodbav:"expiresAt" json:"expiresAt"`
}

// TokensTable is the DynamoDB table name for issued tokens; token is the key.
const TokensTable = "Tokens"
