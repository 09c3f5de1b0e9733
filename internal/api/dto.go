package api

import (
	"github.com/ostrem/partmatch/internal/match"
	"github.com/ostrem/partmatch/internal/reconcile"
)

// CatalogSummary mirrors the service-layer summary for list responses.
type CatalogSummary = reconcile.CatalogSummary

// CatalogDetail mirrors the service-layer detail response.
type CatalogDetail = reconcile.CatalogDetail

// CatalogListResponse wraps the catalog listing.
type CatalogListResponse struct {
	Catalogs []CatalogSummary `json:"catalogs"`
}

// UploadResponse is returned after a catalog or request upload.
type UploadResponse struct {
	Records int `json:"records"`
}

// MatchResponse wraps the match partition.
type MatchResponse struct {
	Found   []match.Pair `json:"found"`
	Missing []match.Miss `json:"missing"`
	Total   int          `json:"total"`
	Query   string       `json:"query,omitempty"`
}

// InsightsResponse mirrors the service-layer aggregate report.
type InsightsResponse = reconcile.InsightsReport

// BriefResponse wraps the narrative text.
type BriefResponse struct {
	Brief string `json:"brief"`
}
