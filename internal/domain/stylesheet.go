package domain

// StyleMapping maps a stylesheet source name (style.scss) to its hashed output
// name (style.cf83e135.css).
type StyleMapping map[string]string
