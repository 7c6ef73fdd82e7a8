package dto

import (
	"survey-dashboard-be/pkg/charts"
)

// DashboardEventRequest is one UI callback: any combination of an upload, a tab
// click, a purge click and the table editor's rows.
type DashboardEventRequest struct {
	Contents    *string          `json:"contents"`
	Filename    *string          `json:"filename"`
	Tab         string           `json:"tab" validate:"omitempty,oneof=tab-1 tab-2 tab-3 tab-4 tab-5"`
	PurgeClicks *int             `json:"purge_clicks" validate:"omitempty,min=0"`
	TableName   *string          `json:"table_name"`
	Columns     []string         `json:"columns"`
	Rows        []map[string]any `json:"rows"`
}

type UploadRequest struct {
	Contents  string `json:"contents" validate:"required"`
	Filename  string `json:"filename" validate:"required"`
	TableName string `json:"table_name"`
	Tab       string `json:"tab" validate:"omitempty,oneof=tab-1 tab-2 tab-3 tab-4 tab-5"`
}

type ReplaceTableRequest struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows" validate:"required"`
}

type EditCellRequest struct {
	Row    *int   `json:"row" validate:"required,min=0"`
	Column string `json:"column" validate:"required"`
	Value  any    `json:"value"`
}

type TableColumn struct {
	Name string `json:"name"`
	Id   string `json:"id"`
}

type TableResponse struct {
	Columns   []TableColumn    `json:"columns"`
	Data      []map[string]any `json:"data"`
	PageSize  int              `json:"page_size"`
	TotalRows int              `json:"total_rows"`
}

type TablePageResponse struct {
	TableResponse
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

type ContentResponse struct {
	Kind    string         `json:"kind"`
	Figure  *charts.Figure `json:"figure,omitempty"`
	Message string         `json:"message,omitempty"`
}

type DashboardViewResponse struct {
	SessionId   string          `json:"session_id"`
	Source      string          `json:"source"`
	Label       string          `json:"label"`
	Table       TableResponse   `json:"table"`
	Tabs        []charts.Tab    `json:"tabs"`
	SelectedTab charts.TabID    `json:"selected_tab"`
	Content     ContentResponse `json:"content"`
}

// LiveMessage is pushed to every websocket viewer of a session.
type LiveMessage struct {
	Type      string `json:"type"`
	SessionId string `json:"session_id"`
	Event     string `json:"event"`
	Source    string `json:"source"`
	Rows      int    `json:"rows"`
}

// ActivityMessage travels over the internal bus.
type ActivityMessage struct {
	Event     string         `json:"event"`
	SessionId string         `json:"session_id"`
	Source    string         `json:"source"`
	Label     string         `json:"label"`
	Rows      int            `json:"rows"`
	Details   map[string]any `json:"details,omitempty"`
}
