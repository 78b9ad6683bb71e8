// Package narrative wraps an LLM behind a best-effort advisory layer.
// The numeric engines never depend on it; when the model is unreachable
// or returns garbage the advisor falls back to canned commentary instead
// of propagating an error into the analysis path.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
)

const (
	defaultEndpoint = "https://api.anthropic.com/v1/messages"
	defaultModel    = "claude-3-5-haiku-latest"
	requestTimeout  = 30 * time.Second
	maxTokens       = 1024
)

// Analysis is the structured narrative the advisor produces.
type Analysis struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
}

// Advisor calls a hosted language model to turn engine output into prose.
// A zero API key disables the advisor; Analyze then returns the fallback
// immediately.
type Advisor struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
	logger   zerolog.Logger
}

// NewAdvisor builds an advisor from the environment. It reads
// ANTHROPIC_API_KEY and, optionally, FINSIM_ADVISOR_MODEL.
func NewAdvisor(logger zerolog.Logger) *Advisor {
	model := os.Getenv("FINSIM_ADVISOR_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Advisor{
		apiKey:   os.Getenv("ANTHROPIC_API_KEY"),
		endpoint: defaultEndpoint,
		model:    model,
		client:   &http.Client{Timeout: requestTimeout},
		logger:   logger,
	}
}

// Enabled reports whether an API key is configured.
func (a *Advisor) Enabled() bool {
	return a.apiKey != ""
}

// Analyze produces a narrative for whichever results are present. Nil
// arguments are simply left out of the prompt. Analyze never fails: any
// transport or parsing problem is logged and the fallback returned.
func (a *Advisor) Analyze(ctx context.Context, summary *domain.SimulationSummary, risk *domain.DSRResult, health *domain.HealthScoreResult) *Analysis {
	if !a.Enabled() {
		return fallbackAnalysis(summary, risk, health)
	}

	prompt := buildPrompt(summary, risk, health)
	raw, err := a.complete(ctx, prompt)
	if err != nil {
		a.logger.Warn().Err(err).Msg("advisor request failed, using fallback commentary")
		return fallbackAnalysis(summary, risk, health)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		a.logger.Warn().Err(err).Msg("advisor returned unparseable output, using fallback commentary")
		return fallbackAnalysis(summary, risk, health)
	}
	return analysis
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (a *Advisor) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(messageRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var decoded messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Content) == 0 {
		return "", fmt.Errorf("model returned empty content")
	}
	return decoded.Content[0].Text, nil
}

func buildPrompt(summary *domain.SimulationSummary, risk *domain.DSRResult, health *domain.HealthScoreResult) string {
	var b strings.Builder
	b.WriteString("You are a financial advisor. Based on the figures below, respond with JSON only, ")
	b.WriteString(`using the shape {"summary": string, "insights": [string], "risks": [string], "recommendations": [string]}.`)
	b.WriteString(" Keep each list to at most four short items.\n\n")

	if summary != nil && len(summary.Years) > 0 {
		stats := summary.Statistics
		fmt.Fprintf(&b, "Monte Carlo projection over %d years:\n", summary.Years[len(summary.Years)-1])
		fmt.Fprintf(&b, "- median final net worth: %s\n", stats.Median.Round(0))
		fmt.Fprintf(&b, "- mean final net worth: %s\n", stats.Mean.Round(0))
		fmt.Fprintf(&b, "- probability of ending with positive net worth: %s%%\n", stats.ProbabilityOfSuccess.Mul(decimal.NewFromInt(100)).Round(1))
		fmt.Fprintf(&b, "- 5th percentile outcome: %s\n\n", stats.ValueAtRisk.Round(0))
	}
	if risk != nil {
		fmt.Fprintf(&b, "Debt-service analysis:\n- DSR: %s%%\n- DTI: %s%%\n- risk level: %s\n- risk score: %d/100\n\n",
			risk.DSR.StringFixed(1), risk.DTI.StringFixed(1), risk.RiskLevel, risk.RiskScore)
	}
	if health != nil {
		fmt.Fprintf(&b, "Financial health score: %s/100 (grade %s)\n\n", health.TotalScore.StringFixed(1), health.Grade)
	}

	return b.String()
}

// parseAnalysis tolerates prose around the JSON object by extracting the
// outermost braces before unmarshalling.
func parseAnalysis(raw string) (*Analysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	if analysis.Summary == "" {
		return nil, fmt.Errorf("analysis missing summary")
	}
	return &analysis, nil
}

// fallbackAnalysis restates the numeric results in plain language so the
// caller always has something to show.
func fallbackAnalysis(summary *domain.SimulationSummary, risk *domain.DSRResult, health *domain.HealthScoreResult) *Analysis {
	analysis := &Analysis{
		Summary:  "Automated commentary is unavailable. The figures below summarize the computed results.",
		Insights: []string{},
		Risks:    []string{},
		Recommendations: []string{
			"Review the detailed numbers and revisit the analysis after any major financial change.",
		},
	}

	if summary != nil && len(summary.Years) > 0 {
		stats := summary.Statistics
		analysis.Insights = append(analysis.Insights,
			fmt.Sprintf("Median projected net worth after %d years is %s won.",
				summary.Years[len(summary.Years)-1], stats.Median.Round(0)))
		successPct := stats.ProbabilityOfSuccess.Mul(decimal.NewFromInt(100))
		if successPct.LessThan(decimal.NewFromInt(80)) {
			analysis.Risks = append(analysis.Risks,
				fmt.Sprintf("Only %s%% of simulated paths end with positive net worth.", successPct.Round(1)))
		}
	}
	if risk != nil {
		analysis.Insights = append(analysis.Insights,
			fmt.Sprintf("Debt-service ratio is %s%% (risk level: %s).", risk.DSR.StringFixed(1), risk.RiskLevel))
		if risk.RiskLevel == domain.RiskWarning || risk.RiskLevel == domain.RiskDanger {
			analysis.Risks = append(analysis.Risks, "Debt service takes an unsustainable share of income.")
		}
	}
	if health != nil {
		analysis.Insights = append(analysis.Insights,
			fmt.Sprintf("Financial health grade is %s (%s/100).", health.Grade, health.TotalScore.StringFixed(1)))
	}

	return analysis
}
