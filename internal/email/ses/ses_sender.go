package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendSuggestionDecision(ctx context.Context, toEmail string, sg *domain.SuggestedEntity) error {
	queueURL := fmt.Sprintf("%s/suggestions", s.frontendURL)

	subject := fmt.Sprintf("Suggestion %s: %s", sg.Status, sg.SuggestedName)
	htmlBody := buildDecisionHTML(sg, queueURL)
	textBody := fmt.Sprintf(
		"The %s suggestion %q has been %s.\n\nReview notes: %s\n\nSuggestion queue: %s\n\nIngrid Team",
		sg.Kind, sg.SuggestedName, sg.Status, sg.ReviewNotes, queueURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildDecisionHTML(sg *domain.SuggestedEntity, queueURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Suggestion %s</h2>
  <p>The %s suggestion <strong>%s</strong> has been <strong>%s</strong>.</p>
  <p>Review notes: %s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open Suggestion Queue</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Ingrid - Document Intelligence Platform</p>
</body>
</html>`, sg.Status, sg.Kind, sg.SuggestedName, sg.Status, sg.ReviewNotes, queueURL)
}
