package schema

// ModerationReportTable represents the 'moderation.report' table
type ModerationReportTable struct {
	Table       string
	ID          string
	SubjectKind string
	SubjectID   string
	ReporterID  string
	Reason      string
	Status      string
	ResolvedBy  string
	CreatedAt   string
	UpdatedAt   string
}

// ModerationReport is the schema definition for moderation.report
var ModerationReport = ModerationReportTable{
	Table:       "moderation.report",
	ID:          "id",
	SubjectKind: "subjectkind",
	SubjectID:   "subjectid",
	ReporterID:  "reporterid",
	Reason:      "reason",
	Status:      "status",
	ResolvedBy:  "resolvedby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ModerationReportTable) Columns() []string {
	return []string{t.ID, t.SubjectKind, t.SubjectID, t.ReporterID, t.Reason, t.Status, t.ResolvedBy, t.CreatedAt, t.UpdatedAt}
}
