package classify

import "strings"

// Role tags a participant as a real person or the automated translator agent.
type Role string

const (
	RoleHuman      Role = "human"
	RoleTranslator Role = "translator"
)

// Tokens that mark a display name as belonging to an automated agent.
// Substring match, so a human named "Aiden" is tagged translator too; the
// demo accepts that trade-off.
var agentTokens = []string{"ai", "bot"}

// Classify maps a display name to a role. Pure and total: an empty or
// unknown name is a human.
func Classify(displayName string) Role {
	lower := strings.ToLower(displayName)
	for _, tok := range agentTokens {
		if strings.Contains(lower, tok) {
			return RoleTranslator
		}
	}
	return RoleHuman
}
