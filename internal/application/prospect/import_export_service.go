package prospect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coldpitch/backend/internal/domain/prospect"
	"github.com/coldpitch/backend/internal/domain/shared"
	"github.com/coldpitch/backend/internal/infrastructure/csvio"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportHeaders are the column names written by the prospect export,
// in file order. The importer accepts these or their snake_case forms.
var ExportHeaders = []string{
	"ID", "Name", "Email", "Phone", "WhatsApp", "Company", "Role",
	"Website", "Country", "State", "Niche", "Has Socials",
	"LinkedIn", "Twitter", "Facebook", "Instagram",
	"Mode of Reachout", "Status", "Tags", "Source",
	"Date Added", "Last Activity", "Generated Pitch",
}

const (
	exportDateFormat = "2006-01-02"
	tagSeparator     = ";"
	maxImportErrors  = 50
)

// ExportArchiver stores a copy of generated exports. Archiving is
// best-effort: a failed upload never fails the export itself.
type ExportArchiver interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}

// ImportExportService handles prospect CSV import and export
type ImportExportService struct {
	prospectRepo prospect.Repository
	eventBus     shared.EventPublisher
	archiver     ExportArchiver
	logger       *zap.Logger
}

// NewImportExportService creates a new ImportExportService.
// archiver may be nil when no object storage is configured.
func NewImportExportService(
	prospectRepo prospect.Repository,
	eventBus shared.EventPublisher,
	archiver ExportArchiver,
	logger *zap.Logger,
) *ImportExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportExportService{
		prospectRepo: prospectRepo,
		eventBus:     eventBus,
		archiver:     archiver,
		logger:       logger,
	}
}

// ImportCSV parses the uploaded CSV and creates a prospect per row.
// Rows fail individually; one bad row never aborts the rest.
func (s *ImportExportService) ImportCSV(ctx context.Context, data []byte, actorID uuid.UUID) (*ImportResult, error) {
	parser, err := csvio.ParseFromBytes(data)
	if err != nil {
		return nil, shared.NewDomainError(csvio.ErrCodeInvalidFile, err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError(csvio.ErrCodeMissingHeader, err.Error())
	}
	if missing := parser.ValidateHeaders([]string{"name"}); len(missing) > 0 {
		return nil, shared.NewDomainError(csvio.ErrCodeMissingHeader,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		if errors.Is(err, csvio.ErrInvalidEncoding) {
			return nil, shared.NewDomainError(csvio.ErrCodeInvalidEncoding, err.Error())
		}
		return nil, shared.NewDomainError(csvio.ErrCodeMalformedRow, err.Error())
	}

	result := &ImportResult{}
	seen := make(map[string]bool)

	for _, row := range rows {
		if err := s.importRow(ctx, row, seen, actorID); err != nil {
			result.Failed++
			if len(result.Errors) < maxImportErrors {
				result.Errors = append(result.Errors, csvio.NewRowError(row.LineNumber, "", err.Error()).Error())
			}
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *ImportExportService) importRow(ctx context.Context, row *csvio.Row, seen map[string]bool, actorID uuid.UUID) error {
	email := strings.ToLower(strings.TrimSpace(row.Get("email")))
	if email != "" {
		if seen[email] {
			return fmt.Errorf("duplicate email %q in file", email)
		}
		exists, err := s.prospectRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("a prospect with email %q already exists", email)
		}
	}

	p, err := prospect.NewProspect(row.Get("name"), email, actorID)
	if err != nil {
		return err
	}

	p.Phone = row.Get("phone")
	p.Whatsapp = row.Get("whatsapp")
	p.Company = row.Get("company")
	p.Role = row.Get("role")
	p.Website = row.Get("website")
	p.SetLocation(row.Get("country"), row.Get("state"))
	p.SetNiche(row.Get("niche"))
	p.SetSocials(prospect.SocialLinks{
		LinkedIn:  row.Get("linkedin"),
		Twitter:   row.Get("twitter"),
		Facebook:  row.Get("facebook"),
		Instagram: row.Get("instagram"),
	})
	if mode := row.Get("mode_of_reachout"); mode != "" {
		if err := p.SetReachoutMode(prospect.ReachoutMode(normalizeEnum(mode))); err != nil {
			return err
		}
	}
	if tags := row.Get("tags"); tags != "" {
		p.SetTags(strings.Split(tags, tagSeparator))
	}
	p.SetSource(row.GetOrDefault("source", "CSV Import"))
	if pitch := row.Get("generated_pitch"); pitch != "" {
		p.SetGeneratedPitch(pitch)
	}
	if status := row.Get("status"); status != "" {
		if err := p.ChangeStatus(prospect.Status(normalizeEnum(status)), actorID); err != nil {
			return err
		}
	}
	if added := row.Get("date_added"); added != "" {
		if t, err := time.Parse(exportDateFormat, added); err == nil {
			p.DateAdded = t
		}
	}

	if err := s.prospectRepo.Save(ctx, p); err != nil {
		return err
	}

	if email != "" {
		seen[email] = true
	}
	if s.eventBus != nil {
		for _, event := range p.GetDomainEvents() {
			_ = s.eventBus.Publish(ctx, event)
		}
		p.ClearDomainEvents()
	}
	return nil
}

// ExportCSV renders every prospect matching the filter as a CSV
// document and archives a copy to object storage when configured.
func (s *ImportExportService) ExportCSV(ctx context.Context, filter ListFilter) ([]byte, string, error) {
	f := shared.DefaultFilter()
	f.PageSize = 0 // export is unpaginated
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Niche != "" {
		f.Filters["niche"] = filter.Niche
	}

	prospects, err := s.prospectRepo.FindAll(ctx, f)
	if err != nil {
		return nil, "", err
	}

	records := make([][]string, len(prospects))
	for i := range prospects {
		records[i] = exportRecord(&prospects[i])
	}

	data, err := csvio.BuildCSV(ExportHeaders, records, csvio.WithBOM(true))
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("prospects-%s.csv", time.Now().Format("20060102-150405"))
	s.archive(ctx, filename, data)

	return data, filename, nil
}

func (s *ImportExportService) archive(ctx context.Context, filename string, data []byte) {
	if s.archiver == nil {
		return
	}
	key := "exports/" + filename
	if err := s.archiver.Upload(ctx, key, data, "text/csv"); err != nil {
		s.logger.Warn("failed to archive prospect export",
			zap.String("key", key),
			zap.Error(err))
	}
}

func exportRecord(p *prospect.Prospect) []string {
	return []string{
		p.ID.String(),
		p.Name,
		p.Email,
		p.Phone,
		p.Whatsapp,
		p.Company,
		p.Role,
		p.Website,
		p.Country,
		p.State,
		p.Niche,
		fmt.Sprintf("%t", p.HasSocials),
		p.Socials.LinkedIn,
		p.Socials.Twitter,
		p.Socials.Facebook,
		p.Socials.Instagram,
		string(p.ModeOfReachout),
		string(p.Status),
		strings.Join(p.Tags, tagSeparator),
		p.Source,
		p.DateAdded.Format(exportDateFormat),
		p.LastActivity.Format(exportDateFormat),
		p.GeneratedPitch,
	}
}

// normalizeEnum title-cases a single-word enum value so "contacted"
// and "CONTACTED" both import as "Contacted". Multi-word values like
// "LinkedIn" pass through when already in canonical form.
func normalizeEnum(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	switch strings.ToLower(v) {
	case "linkedin":
		return "LinkedIn"
	case "whatsapp":
		return "Whatsapp"
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}
