package conversation

import (
	"strings"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// intentKeywords scores a message against each intent. Iteration over the
// fixed slice keeps detection deterministic when scores tie.
var intentKeywords = []struct {
	intent   domain.IntentType
	keywords []string
}{
	{domain.IntentProcessDocument, []string{"upload", "attach", "receipt", "invoice", "scan", "document", "business card"}},
	{domain.IntentCreateExpense, []string{"expense", "log", "record", "spent", "create expense"}},
	{domain.IntentQueryStatus, []string{"status", "pending", "progress", "where", "review", "approved"}},
	{domain.IntentHelp, []string{"help", "how do i", "what can you", "commands"}},
}

// DetectIntent classifies a user message by keyword scoring. Phrase keywords
// count double. Messages with no hits come back as unknown with low
// confidence so the caller can fall through to a default reply.
func DetectIntent(message string) domain.Intent {
	lower := strings.ToLower(message)

	best := domain.Intent{Primary: domain.IntentUnknown, Confidence: 0.3}
	bestScore := 0
	for _, entry := range intentKeywords {
		score := 0
		for _, kw := range entry.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			if strings.Contains(kw, " ") {
				score += 2
			} else {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			conf := 0.5 + 0.15*float64(score)
			if conf > 0.95 {
				conf = 0.95
			}
			best = domain.Intent{Primary: entry.intent, Confidence: conf}
		}
	}
	return best
}
