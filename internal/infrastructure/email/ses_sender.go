// Package email delivers outbound mail through AWS SES v2.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"github.com/coldpitch/backend/internal/application/campaign"
	"github.com/coldpitch/backend/internal/application/staff"
	"github.com/coldpitch/backend/internal/infrastructure/config"
)

const charsetUTF8 = "UTF-8"

// credentialsTemplate is the body of the login-credentials email sent
// when an admin provisions or resets a staff account.
var credentialsTemplate = template.Must(template.New("credentials").Parse(`<html>
<body style="font-family: sans-serif; color: #1f2933;">
  <p>Hi {{.Name}},</p>
  <p>Your account is ready. Sign in with the credentials below and change your password after your first login.</p>
  <p>
    Email: <strong>{{.To}}</strong><br>
    Temporary password: <strong>{{.Password}}</strong>
  </p>
  {{if .LoginURL}}<p><a href="{{.LoginURL}}">Open the workspace</a></p>{{end}}
  <p>If you did not expect this email, contact your administrator.</p>
</body>
</html>`))

// SESSender sends email through the SES v2 API. It is safe for
// concurrent use; campaign bulk sends call Send from a worker pool.
type SESSender struct {
	client        *sesv2.Client
	senderName    string
	senderAddress string
	logger        *zap.Logger
}

// NewSESSender creates an SES sender from email configuration.
// When AccessKey is empty the default AWS credential chain is used.
func NewSESSender(ctx context.Context, cfg config.EmailConfig, logger *zap.Logger) (*SESSender, error) {
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("email sender address is not configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESSender{
		client:        sesv2.NewFromConfig(awsCfg),
		senderName:    cfg.SenderName,
		senderAddress: cfg.SenderAddress,
		logger:        logger.Named("email.ses"),
	}, nil
}

// Send delivers a single email
func (s *SESSender) Send(ctx context.Context, msg campaign.EmailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("recipient address is empty")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.fromAddress()),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charsetUTF8)},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		s.logger.Warn("SES send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("sending email to %s: %w", msg.To, err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	s.logger.Debug("Email sent", zap.String("to", msg.To), zap.String("message_id", messageID))
	return nil
}

// SendCredentials delivers login credentials to a staff member
func (s *SESSender) SendCredentials(ctx context.Context, email staff.CredentialsEmail) error {
	var body bytes.Buffer
	if err := credentialsTemplate.Execute(&body, email); err != nil {
		return fmt.Errorf("rendering credentials email: %w", err)
	}

	return s.Send(ctx, campaign.EmailMessage{
		To:      email.To,
		ToName:  email.Name,
		Subject: "Your login credentials",
		Body:    body.String(),
	})
}

func (s *SESSender) fromAddress() string {
	if s.senderName != "" {
		return fmt.Sprintf("%s <%s>", s.senderName, s.senderAddress)
	}
	return s.senderAddress
}

// Ensure SESSender satisfies its application-layer collaborators
var (
	_ campaign.EmailSender    = (*SESSender)(nil)
	_ staff.CredentialsMailer = (*SESSender)(nil)
)
