package mapper

import (
	"survey-dashboard-be/internal/constant"
	"survey-dashboard-be/internal/dto"
	"survey-dashboard-be/internal/entity"
	"survey-dashboard-be/pkg/charts"
	"survey-dashboard-be/pkg/table"
)

type DashboardMapper struct{}

func NewDashboardMapper() *DashboardMapper {
	return &DashboardMapper{}
}

// ToTable renders every row of t for the table editor.
func (m *DashboardMapper) ToTable(t *table.Table) dto.TableResponse {
	cols := []string{}
	if t != nil {
		cols = t.Columns
	}
	columns := make([]dto.TableColumn, len(cols))
	for i, c := range cols {
		columns[i] = dto.TableColumn{Name: c, Id: c}
	}
	return dto.TableResponse{
		Columns:   columns,
		Data:      t.Records(),
		PageSize:  constant.TablePageSize,
		TotalRows: t.Len(),
	}
}

// ToTablePage renders one page. page is 1-based and must be in range, except
// that page 1 of an empty table is valid.
func (m *DashboardMapper) ToTablePage(t *table.Table, page int) dto.TablePageResponse {
	full := m.ToTable(t)
	totalPages := (full.TotalRows + constant.TablePageSize - 1) / constant.TablePageSize

	start := (page - 1) * constant.TablePageSize
	end := start + constant.TablePageSize
	if start > len(full.Data) {
		start = len(full.Data)
	}
	if end > len(full.Data) {
		end = len(full.Data)
	}
	full.Data = full.Data[start:end]

	return dto.TablePageResponse{
		TableResponse: full,
		Page:          page,
		TotalPages:    totalPages,
	}
}

func (m *DashboardMapper) ToContent(v charts.View) dto.ContentResponse {
	if v.Available() {
		return dto.ContentResponse{Kind: constant.ContentKindChart, Figure: v.Figure}
	}
	return dto.ContentResponse{Kind: constant.ContentKindPlaceholder, Message: v.Placeholder}
}

func (m *DashboardMapper) ToView(s *entity.Session, content dto.ContentResponse) *dto.DashboardViewResponse {
	tabs := []charts.Tab{}
	if !s.Dataset.IsEmpty() {
		tabs = charts.Tabs(s.Label)
	}
	return &dto.DashboardViewResponse{
		SessionId:   s.Id,
		Source:      string(s.Source),
		Label:       s.Label,
		Table:       m.ToTable(s.Dataset),
		Tabs:        tabs,
		SelectedTab: s.SelectedTab,
		Content:     content,
	}
}
