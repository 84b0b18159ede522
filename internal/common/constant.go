package common

// TokenType is the literal token_type reported next to every issued token.
const TokenType = "bearer"

// AuthorizationHeaderName carries "Bearer <credential>" on authenticated requests.
const AuthorizationHeaderName = "Authorization"
