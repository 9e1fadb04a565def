package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	geminidomain "github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini/domain"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/agency-ratecard-api/internal/config"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
	"github.com/vfg2006/agency-ratecard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	OpEstimate       = "estimate"
	OpAnalyzeWorkLog = "analyze_worklog"
	OpAnalyzeInvoice = "analyze_invoice"
)

var errUnexpectedShape = errors.New("unexpected document shape")

type EstimateInput struct {
	Scope    string
	Image    *domain.Attachment
	Region   domain.Region
	Rates    []domain.ServiceRate
	Brand    *domain.Brand
	Settings *domain.PricingSettings
}

type WorkLogInput struct {
	Brand        *domain.Brand
	Input        string
	Rates        []domain.ServiceRate
	PeriodMonths int
}

// Mapper turns free-form agency input into structured pricing data.
type Mapper interface {
	Estimate(ctx context.Context, in EstimateInput) (*domain.EstimateResponse, error)
	AnalyzeWorkLog(ctx context.Context, in WorkLogInput) (*domain.PendingReview, error)
	AnalyzeInvoice(ctx context.Context, text string, file *domain.Attachment) ([]domain.InvoiceInsight, error)
}

type GeminiMapper struct {
	cfg    config.Gemini
	Client geminiclient.Client
}

func New(cfg config.Gemini, client geminiclient.Client) *GeminiMapper {
	return &GeminiMapper{
		cfg:    cfg,
		Client: client,
	}
}

func (m *GeminiMapper) Estimate(ctx context.Context, in EstimateInput) (*domain.EstimateResponse, error) {
	req := geminiclient.Request{
		Model:             m.cfg.EstimateModel,
		SystemInstruction: estimateInstruction(in),
		Prompt:            estimatePrompt(in.Scope),
		Schema:            estimateSchema,
		Files:             inlineFiles(in.Image),
	}

	var raw geminidomain.Estimate
	if err := m.generate(ctx, OpEstimate, req, &raw, false); err != nil {
		return nil, err
	}

	resp := &domain.EstimateResponse{
		Items:           toEstimateItems(raw.Items),
		TotalEstimate:   raw.TotalEstimate,
		Currency:        raw.Currency,
		StrategicAdvice: raw.StrategicAdvice,
		ThoughtProcess:  raw.ThoughtProcess,
		MappingLogic:    make([]domain.TaskMapping, 0, len(raw.MappingLogic)),
		RawInput:        in.Scope,
	}

	if raw.RecommendedTier != "" {
		tier := domain.PricingTier(raw.RecommendedTier)
		resp.RecommendedTier = &tier
	}

	for _, mapping := range raw.MappingLogic {
		resp.MappingLogic = append(resp.MappingLogic, domain.TaskMapping{
			InputPoint:    mapping.InputPoint,
			MappedService: mapping.MappedService,
			Reasoning:     mapping.Reasoning,
		})
	}

	return resp, nil
}

func (m *GeminiMapper) AnalyzeWorkLog(ctx context.Context, in WorkLogInput) (*domain.PendingReview, error) {
	if in.Brand == nil {
		return nil, errors.New("gemini: work log analysis requires a brand")
	}

	req := geminiclient.Request{
		Model:             m.cfg.AuditModel,
		SystemInstruction: workLogInstruction(in),
		Prompt:            workLogPrompt(in.Input),
		Schema:            workLogSchema,
	}

	var raw geminidomain.WorkLogAnalysis
	if err := m.generate(ctx, OpAnalyzeWorkLog, req, &raw, false); err != nil {
		return nil, err
	}

	return &domain.PendingReview{
		Deliverables:      toEstimateItems(raw.Deliverables),
		TotalMarketValue:  raw.TotalMarketValue,
		TotalSheetRevenue: raw.TotalSheetRevenue,
		OverageTotal:      raw.OverageTotal,
		Health:            domain.Health(raw.Health),
		AIInsight:         raw.AIInsight,
	}, nil
}

func (m *GeminiMapper) AnalyzeInvoice(ctx context.Context, text string, file *domain.Attachment) ([]domain.InvoiceInsight, error) {
	req := geminiclient.Request{
		Model:             m.cfg.InvoiceModel,
		SystemInstruction: invoiceInstruction,
		Prompt:            invoicePrompt(text),
		Schema:            invoiceSchema,
		Files:             inlineFiles(file),
	}

	var raw []geminidomain.InvoiceLine
	if err := m.generate(ctx, OpAnalyzeInvoice, req, &raw, true); err != nil {
		return nil, err
	}

	insights := make([]domain.InvoiceInsight, 0, len(raw))
	for _, line := range raw {
		insights = append(insights, domain.InvoiceInsight{
			DetectedName:     line.DetectedName,
			DetectedCategory: domain.Category(line.DetectedCategory),
			DetectedRate:     line.DetectedRate,
			DetectedCurrency: domain.Currency(line.DetectedCurrency),
			DetectedUnit:     line.DetectedUnit,
			Confidence:       line.Confidence,
			SourceLabel:      line.SourceLabel,
		})
	}

	return insights, nil
}

func (m *GeminiMapper) generate(ctx context.Context, op string, req geminiclient.Request, dst any, expectList bool) error {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"op":    op,
		"model": req.Model,
	})

	text, err := m.Client.GenerateJSON(ctx, req)
	if err != nil {
		logger.WithError(err).Error("gemini: generation failed")
		return &MapperError{Op: op, Kind: ErrorKindTransport, Err: err}
	}

	if err := decodeDocument(text, dst, expectList); err != nil {
		var mapperErr *MapperError
		if errors.As(err, &mapperErr) {
			mapperErr.Op = op
		}
		logger.WithError(err).Warn("gemini: response rejected")
		return err
	}

	if log.IsDevelopment() {
		logger.Debugf("gemini: response decoded\n%s", utils.PrettyJSON(dst))
	}

	return nil
}

// decodeDocument parses the model text into a generic document and decodes it into dst.
// Absent fields keep their zero value; numbers and booleans sent as strings are accepted.
func decodeDocument(text string, dst any, expectList bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return &MapperError{Kind: ErrorKindEmpty}
	}

	var document any
	if err := json.UnmarshalFromString(text, &document); err != nil {
		return &MapperError{Kind: ErrorKindParse, Err: err}
	}

	switch document.(type) {
	case map[string]any:
		if expectList {
			return &MapperError{Kind: ErrorKindParse, Err: fmt.Errorf("%w: got object, want list", errUnexpectedShape)}
		}
	case []any:
		if !expectList {
			return &MapperError{Kind: ErrorKindParse, Err: fmt.Errorf("%w: got list, want object", errUnexpectedShape)}
		}
	case nil:
		return nil
	default:
		return &MapperError{Kind: ErrorKindParse, Err: fmt.Errorf("%w: got %T", errUnexpectedShape, document)}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return &MapperError{Kind: ErrorKindParse, Err: err}
	}

	if err := decoder.Decode(document); err != nil {
		return &MapperError{Kind: ErrorKindParse, Err: err}
	}

	return nil
}

func toEstimateItems(raw []geminidomain.Deliverable) []domain.EstimateItem {
	items := make([]domain.EstimateItem, 0, len(raw))
	for _, d := range raw {
		item := domain.EstimateItem{
			Service:       d.Service,
			Quantity:      d.Quantity,
			Unit:          d.Unit,
			SuggestedRate: d.SuggestedRate,
			Total:         d.Total,
			Justification: d.Justification,
			IsOverage:     d.IsOverage,
		}
		if d.Category != "" {
			category := domain.Category(d.Category)
			item.Category = &category
		}
		items = append(items, item)
	}
	return items
}

func inlineFiles(attachment *domain.Attachment) []geminiclient.InlineFile {
	if attachment == nil || len(attachment.Data) == 0 {
		return nil
	}
	return []geminiclient.InlineFile{{Data: attachment.Data, MimeType: attachment.MimeType}}
}
