package usecase

import (
	"encoding/json"
	"strings"

	"flipctl/internal/domain"
)

// ExtractTenantList scans noisy runner output for the first line shaped like a
// JSON array and decodes it as the tenant names. The runner prints arbitrary
// boot noise (loader messages, deprecation warnings) around the one line that
// matters.
func ExtractTenantList(text string) ([]string, error) {
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if len(line) < 2 || !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}

		var tenants []string
		if err := json.Unmarshal([]byte(line), &tenants); err != nil {
			return nil, domain.NewDomainError("ExtractTenantList", domain.ErrParse, err.Error())
		}
		if len(tenants) == 0 {
			return nil, domain.NewDomainError("ExtractTenantList", domain.ErrEmptyList, "")
		}
		return tenants, nil
	}
	return nil, domain.NewDomainError("ExtractTenantList", domain.ErrNoJSONFound, "")
}

// ExtractBooleanStatus reports whether the check command's output means
// "enabled". This is a substring search, not a structured parse: any stray
// "true" in the output counts, matching how the runner echoes the expression
// value (e.g. "=> true").
func ExtractBooleanStatus(text string) bool {
	return strings.Contains(text, "true")
}

// splitLines splits on any mix of CR and LF.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
}
