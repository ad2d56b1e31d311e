package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string            `json:"arguments,omitempty"`
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	ID               int                   `json:"id,omitempty"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	Snippet     *sarifMessage `json:"snippet,omitempty"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifURI(path string) string {
	return filepath.ToSlash(path)
}

func sarifSpan(fs *source.FileSet, span source.Span) sarifPhysicalLocation {
	start, end := fs.Resolve(span)
	return sarifPhysicalLocation{
		ArtifactLocation: sarifArtifact{URI: sarifURI(filePath(fs, span.File, PathModeRelative))},
		Region: &sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
			Snippet:     sarifSnippet(span.Text(fs.Get(span.File))),
		},
	}
}

func sarifSnippet(text string) *sarifMessage {
	if text == "" {
		return nil
	}
	return &sarifMessage{Text: text}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Findings become results; load failures become tool execution notifications.
// Timing entries are not exported.
func Sarif(w io.Writer, docs []Document, fs *source.FileSet, meta SarifRunMeta) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          []sarifRule{},
		}},
		Results: []sarifResult{},
	}
	invocation := sarifInvocation{Arguments: meta.InvocationArgs, ExecutionSuccessful: true}
	ruleIndex := map[diag.Code]int{}

	for _, doc := range docs {
		for _, d := range items(doc.Bag) {
			switch {
			case d.Code == diag.IOLoadFileError:
				invocation.Notifications = append(invocation.Notifications, sarifNotification{
					Level:   "error",
					Message: sarifMessage{Text: d.Message},
					Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifact{URI: sarifURI(docPath(fs, doc.Path, PathModeRelative))},
					}}},
				})
				continue
			case !located(fs, d.Primary, d.Code):
				continue
			}

			idx, ok := ruleIndex[d.Code]
			if !ok {
				idx = len(run.Tool.Driver.Rules)
				ruleIndex[d.Code] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
					ID:               d.Code.ID(),
					ShortDescription: sarifMessage{Text: d.Code.Title()},
				})
			}

			res := sarifResult{
				RuleID:    d.Code.ID(),
				RuleIndex: idx,
				Level:     sarifLevel(d.Severity),
				Message:   sarifMessage{Text: d.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifSpan(fs, d.Primary)}},
			}
			for i, n := range d.Notes {
				if !located(fs, n.Span, d.Code) {
					continue
				}
				res.RelatedLocations = append(res.RelatedLocations, sarifLocation{
					ID:               i + 1,
					PhysicalLocation: sarifSpan(fs, n.Span),
					Message:          &sarifMessage{Text: n.Msg},
				})
			}
			run.Results = append(run.Results, res)
		}
	}
	run.Invocations = []sarifInvocation{invocation}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}
