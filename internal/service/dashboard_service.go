package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"survey-dashboard-be/internal/constant"
	"survey-dashboard-be/internal/dto"
	"survey-dashboard-be/internal/entity"
	"survey-dashboard-be/internal/mapper"
	"survey-dashboard-be/internal/pkg/logger"
	"survey-dashboard-be/internal/repository/memory"
	"survey-dashboard-be/pkg/charts"
	"survey-dashboard-be/pkg/cleaning"
	"survey-dashboard-be/pkg/ingest"
	"survey-dashboard-be/pkg/table"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrPageOutOfRange = errors.New("page out of range")

// ChartUnavailableError is returned when a chart image is requested for a view
// that only has placeholder text.
type ChartUnavailableError struct {
	Message string
}

func (e *ChartUnavailableError) Error() string {
	return e.Message
}

type IDashboardService interface {
	HandleEvent(ctx context.Context, sessionId string, req *dto.DashboardEventRequest) (*dto.DashboardViewResponse, error)
	Upload(ctx context.Context, sessionId string, req *dto.UploadRequest) (*dto.DashboardViewResponse, error)
	UploadFile(ctx context.Context, sessionId, filename string, data []byte, tableName, tab string) (*dto.DashboardViewResponse, error)
	Purge(ctx context.Context, sessionId string) (*dto.DashboardViewResponse, error)
	View(ctx context.Context, sessionId, tab string) (*dto.DashboardViewResponse, error)
	TablePage(ctx context.Context, sessionId string, page int) (*dto.TablePageResponse, error)
	ReplaceTable(ctx context.Context, sessionId string, req *dto.ReplaceTableRequest) (*dto.DashboardViewResponse, error)
	EditCell(ctx context.Context, sessionId string, req *dto.EditCellRequest) (*dto.DashboardViewResponse, error)
	ChartHTML(ctx context.Context, sessionId, tab string, w io.Writer) error
	ChartPNG(ctx context.Context, sessionId, tab string) ([]byte, error)
}

type dashboardService struct {
	sessions  *memory.SessionRepository
	publisher IPublisherService
	mapper    *mapper.DashboardMapper
	logger    logger.ILogger
	tracer    trace.Tracer
}

func NewDashboardService(
	sessions *memory.SessionRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IDashboardService {
	return &dashboardService{
		sessions:  sessions,
		publisher: publisher,
		mapper:    mapper.NewDashboardMapper(),
		logger:    log,
		tracer:    otel.Tracer("dashboard-service"),
	}
}

// uploadInput is a file that still has to go through the parser. decodeErr is
// set when the transport payload itself was unreadable.
type uploadInput struct {
	filename  string
	data      []byte
	decodeErr error
}

// event is the normalized form of every operation on a session.
type event struct {
	tab         string
	purgeClicks *int
	purgeOnce   bool
	upload      *uploadInput
	tableName   *string
	columns     []string
	rows        []map[string]any
	replaceRows bool
}

func (s *dashboardService) HandleEvent(ctx context.Context, sessionId string, req *dto.DashboardEventRequest) (*dto.DashboardViewResponse, error) {
	ev := event{
		tab:         req.Tab,
		purgeClicks: req.PurgeClicks,
		tableName:   req.TableName,
		columns:     req.Columns,
		rows:        req.Rows,
		replaceRows: len(req.Rows) > 0,
	}
	if req.Contents != nil && *req.Contents != "" {
		filename := ""
		if req.Filename != nil {
			filename = *req.Filename
		}
		ev.upload = decodeUpload(filename, *req.Contents)
	}
	return s.handle(ctx, sessionId, ev)
}

func (s *dashboardService) Upload(ctx context.Context, sessionId string, req *dto.UploadRequest) (*dto.DashboardViewResponse, error) {
	return s.handle(ctx, sessionId, event{
		tab:       req.Tab,
		upload:    decodeUpload(req.Filename, req.Contents),
		tableName: &req.TableName,
	})
}

func (s *dashboardService) UploadFile(ctx context.Context, sessionId, filename string, data []byte, tableName, tab string) (*dto.DashboardViewResponse, error) {
	return s.handle(ctx, sessionId, event{
		tab:       tab,
		upload:    &uploadInput{filename: filename, data: data},
		tableName: &tableName,
	})
}

func (s *dashboardService) Purge(ctx context.Context, sessionId string) (*dto.DashboardViewResponse, error) {
	return s.handle(ctx, sessionId, event{purgeOnce: true})
}

func (s *dashboardService) View(ctx context.Context, sessionId, tab string) (*dto.DashboardViewResponse, error) {
	return s.handle(ctx, sessionId, event{tab: tab})
}

func (s *dashboardService) ReplaceTable(ctx context.Context, sessionId string, req *dto.ReplaceTableRequest) (*dto.DashboardViewResponse, error) {
	return s.handle(ctx, sessionId, event{
		columns:     req.Columns,
		rows:        req.Rows,
		replaceRows: true,
	})
}

func (s *dashboardService) EditCell(ctx context.Context, sessionId string, req *dto.EditCellRequest) (*dto.DashboardViewResponse, error) {
	session := s.sessions.GetOrCreate(sessionId)
	session.Mu.Lock()
	defer session.Mu.Unlock()

	edited := session.Dataset.Clone()
	if err := edited.Set(*req.Row, req.Column, table.Normalize(req.Value)); err != nil {
		return nil, err
	}

	session.SetDataset(edited, entity.SourceUserEdited)
	s.publish(ctx, session, constant.EventDatasetEdited, map[string]any{
		"row":    *req.Row,
		"column": req.Column,
	})

	return s.render(session)
}

func (s *dashboardService) TablePage(ctx context.Context, sessionId string, page int) (*dto.TablePageResponse, error) {
	session := s.sessions.GetOrCreate(sessionId)
	session.Mu.Lock()
	defer session.Mu.Unlock()

	total := session.Dataset.Len()
	lastPage := (total + constant.TablePageSize - 1) / constant.TablePageSize
	if page < 1 || (page > lastPage && page != 1) {
		return nil, fmt.Errorf("%w: %d (pages=%d)", ErrPageOutOfRange, page, lastPage)
	}

	res := s.mapper.ToTablePage(session.Dataset, page)
	return &res, nil
}

func (s *dashboardService) ChartHTML(ctx context.Context, sessionId, tab string, w io.Writer) error {
	_, span := s.tracer.Start(ctx, "DashboardService.ChartHTML", trace.WithAttributes(attribute.String("tab", tab)))
	defer span.End()

	v, message, err := s.chartView(sessionId, tab)
	if err != nil {
		return err
	}
	if message != "" {
		return charts.RenderPlaceholderHTML(message, w)
	}
	return charts.RenderHTML(v, w)
}

func (s *dashboardService) ChartPNG(ctx context.Context, sessionId, tab string) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "DashboardService.ChartPNG", trace.WithAttributes(attribute.String("tab", tab)))
	defer span.End()

	v, message, err := s.chartView(sessionId, tab)
	if err != nil {
		return nil, err
	}
	if message != "" {
		return nil, &ChartUnavailableError{Message: message}
	}
	if !v.Available() {
		return nil, &ChartUnavailableError{Message: v.Placeholder}
	}

	var buf bytes.Buffer
	if err := charts.RenderPNG(v, &buf); err != nil {
		if errors.Is(err, charts.ErrNoFigure) {
			return nil, &ChartUnavailableError{Message: constant.MessageNoData}
		}
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// chartView evaluates tab against the session dataset without changing the
// selected tab. message is set when there is no dataset at all.
func (s *dashboardService) chartView(sessionId, tab string) (charts.View, string, error) {
	tabId, err := charts.ParseTab(tab)
	if err != nil {
		return charts.View{}, "", err
	}

	session := s.sessions.GetOrCreate(sessionId)
	session.Mu.Lock()
	defer session.Mu.Unlock()

	if session.Dataset.IsEmpty() {
		return charts.View{Tab: tabId}, emptyMessage(session), nil
	}
	v, err := charts.Dispatch(tabId, session.Dataset)
	return v, "", err
}

// handle runs one event under the session lock. The order is fixed: a purge
// short-circuits everything, then an upload, then the edited rows. State is only
// written once the event is known to succeed.
func (s *dashboardService) handle(ctx context.Context, sessionId string, ev event) (*dto.DashboardViewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.HandleEvent")
	defer span.End()

	tab, err := charts.ParseTab(ev.tab)
	if err != nil {
		return nil, err
	}

	session := s.sessions.GetOrCreate(sessionId)
	session.Mu.Lock()
	defer session.Mu.Unlock()

	// 1. Purge
	if ev.purgeOnce {
		next := session.AckedPurgeClicks + 1
		ev.purgeClicks = &next
	}
	if ev.purgeClicks != nil {
		clicks := *ev.purgeClicks
		if clicks < session.AckedPurgeClicks {
			// the client counter restarted (page reload)
			session.AckedPurgeClicks = clicks
		}
		if clicks > session.AckedPurgeClicks {
			session.AckedPurgeClicks = clicks
			session.Clear()
			session.Purged = true
			if ev.tab != "" {
				session.SelectedTab = tab
			}
			span.SetAttributes(attribute.String("dashboard.transition", "purge"))

			s.logger.Info("DashboardService", "Dataset purged", map[string]interface{}{"session_id": sessionId})
			s.publish(ctx, session, constant.EventDatasetPurged, nil)
			return s.purgedView(session), nil
		}
	}

	// 2. Upload
	if ev.upload != nil {
		span.SetAttributes(attribute.String("dashboard.transition", "upload"))
		if err := s.applyUpload(ctx, session, ev.upload, ev.tableName); err != nil {
			return nil, err
		}
		if ev.tab != "" {
			session.SelectedTab = tab
		}
		return s.render(session)
	}

	// 3. Edited rows
	if ev.replaceRows {
		columns := ev.columns
		if len(columns) == 0 {
			columns = session.Dataset.Columns
		}
		edited := table.FromRecords(columns, ev.rows)
		if !sameTable(edited, session.Dataset) {
			span.SetAttributes(attribute.String("dashboard.transition", "edit"))
			session.SetDataset(edited, entity.SourceUserEdited)
			s.publish(ctx, session, constant.EventDatasetEdited, nil)
		}
	}

	if ev.tab != "" {
		session.SelectedTab = tab
	}
	return s.render(session)
}

func (s *dashboardService) applyUpload(ctx context.Context, session *entity.Session, up *uploadInput, tableName *string) error {
	parsed, err := parseUpload(up)
	if err != nil {
		s.logger.Warn("DashboardService", "Upload rejected", map[string]interface{}{
			"session_id": session.Id,
			"filename":   up.filename,
			"error":      err.Error(),
		})
		session.SetDataset(table.Empty(), entity.SourceNone)
		s.publish(ctx, session, constant.EventUploadRejected, map[string]any{
			"filename": up.filename,
			"reason":   err.Error(),
		})
		return nil
	}

	cleaned, err := cleaning.Clean(parsed)
	if err != nil {
		s.logger.Warn("DashboardService", "Cleaning failed", map[string]interface{}{
			"session_id": session.Id,
			"filename":   up.filename,
			"error":      err.Error(),
		})
		return fmt.Errorf("clean %s: %w", up.filename, err)
	}

	session.SetDataset(cleaned, entity.SourceUploaded)
	session.Label = constant.BlankTableLabel
	if tableName != nil && *tableName != "" {
		session.Label = strings.Clone(*tableName)
	}

	s.logger.Info("DashboardService", "Dataset uploaded", map[string]interface{}{
		"session_id": session.Id,
		"filename":   up.filename,
		"rows":       cleaned.Len(),
		"columns":    len(cleaned.Columns),
	})
	s.publish(ctx, session, constant.EventDatasetUploaded, map[string]any{"filename": up.filename})
	return nil
}

func (s *dashboardService) render(session *entity.Session) (*dto.DashboardViewResponse, error) {
	if session.Dataset.IsEmpty() {
		content := dto.ContentResponse{Kind: constant.ContentKindPlaceholder, Message: emptyMessage(session)}
		return s.mapper.ToView(session, content), nil
	}

	v, err := charts.Dispatch(session.SelectedTab, session.Dataset)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToView(session, s.mapper.ToContent(v)), nil
}

func (s *dashboardService) purgedView(session *entity.Session) *dto.DashboardViewResponse {
	return s.mapper.ToView(session, dto.ContentResponse{
		Kind:    constant.ContentKindPlaceholder,
		Message: constant.MessagePurged,
	})
}

func (s *dashboardService) publish(ctx context.Context, session *entity.Session, eventType string, details map[string]any) {
	if s.publisher == nil {
		return
	}
	msg := dto.ActivityMessage{
		Event:     eventType,
		SessionId: session.Id,
		Source:    string(session.Source),
		Label:     session.Label,
		Rows:      session.Dataset.Len(),
		Details:   details,
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Error("DashboardService", "Failed to publish activity", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func emptyMessage(session *entity.Session) string {
	if session.Purged {
		return constant.MessagePurged
	}
	return constant.MessageNoData
}

func decodeUpload(filename, contents string) *uploadInput {
	_, data, err := ingest.DecodeDataURL(contents)
	return &uploadInput{filename: filename, data: data, decodeErr: err}
}

func parseUpload(up *uploadInput) (*table.Table, error) {
	if up.decodeErr != nil {
		return nil, up.decodeErr
	}
	return ingest.Parse(up.filename, up.data)
}

func sameTable(a, b *table.Table) bool {
	if a.IsEmpty() && b.IsEmpty() {
		return true
	}
	return reflect.DeepEqual(a.Columns, b.Columns) && reflect.DeepEqual(a.Rows, b.Rows)
}
