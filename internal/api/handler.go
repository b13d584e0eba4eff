package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-coach/internal/config"
	"career-coach/internal/license"
	"career-coach/internal/llm"
	"career-coach/internal/metrics"
	"career-coach/internal/normalize"
)

type API struct {
	cfg       *config.Config
	generator llm.Generator
	log       *zap.Logger
}

func NewAPI(cfg *config.Config, generator llm.Generator, logger *zap.Logger) *API {
	return &API{
		cfg:       cfg,
		generator: generator,
		log:       logger,
	}
}

// requestBody is the inbound shape. Everything is optional; missing
// collections normalize to empty arrays and missing meta to an empty map.
type requestBody struct {
	Meta map[string]interface{} `json:"meta"`
	Data struct {
		Applications []normalize.RawRecord `json:"applications"`
		Networking   []normalize.RawRecord `json:"networking"`
		Interviews   []normalize.RawRecord `json:"interviews"`
	} `json:"data"`
}

// RecommendationsHandler runs the full pipeline: access gate, normalization,
// prompt assembly, one schema-constrained generation call, JSON validation.
// Every failure short-circuits into a single error envelope.
// @Summary Generate career recommendations
// @Description Reduces a batch of applications, networking contacts, and interview logs to a slim summary and returns LLM-generated recommendations
// @Tags recommendations
// @Accept json
// @Produce json
// @Param x-license-key header string false "License key, required only when an allowlist is configured"
// @Param body body object true "meta and data.applications/networking/interviews record arrays"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /recommendations [post]
func (a *API) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	// Preflight never reaches the gate or the pipeline.
	if r.Method == http.MethodOptions {
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	if r.Method != http.MethodPost {
		a.fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reqID := uuid.NewString()
	log := a.log.With(zap.String("request_id", reqID))

	if err := license.Check(a.cfg.LicenseKeys, r.Header.Get("x-license-key")); err != nil {
		log.Warn("license check failed", zap.Error(err))
		a.fail(w, http.StatusUnauthorized, err.Error())
		return
	}

	var body requestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.fail(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	if a.cfg.OpenAIAPIKey == "" {
		log.Error("OPENAI_API_KEY is not configured")
		a.fail(w, http.StatusInternalServerError, "Server is missing OPENAI_API_KEY configuration.")
		return
	}

	meta := body.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}

	apps := normalize.Applications(body.Data.Applications)
	contacts := normalize.Contacts(body.Data.Networking)
	interviews := normalize.Interviews(body.Data.Interviews)
	metrics.RecordsNormalized.WithLabelValues("applications").Add(float64(len(apps)))
	metrics.RecordsNormalized.WithLabelValues("networking").Add(float64(len(contacts)))
	metrics.RecordsNormalized.WithLabelValues("interviews").Add(float64(len(interviews)))

	log.Info("generating recommendations",
		zap.Int("applications", len(apps)),
		zap.Int("networking", len(contacts)),
		zap.Int("interviews", len(interviews)),
	)

	genReq := llm.NewRequest(meta, apps, contacts, interviews)

	start := time.Now()
	raw, err := a.generator.Generate(r.Context(), genReq)
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("generation call failed", zap.Error(err))
		a.fail(w, http.StatusInternalServerError, err.Error())
		return
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		// Never hide the model's output on this path: the raw text is the
		// only diagnostic the caller gets.
		log.Error("model returned non-JSON output", zap.Error(err))
		metrics.RecommendationRequests.WithLabelValues("500").Inc()
		respondErrorRaw(w, http.StatusInternalServerError, "Model returned non-JSON output.", raw)
		return
	}

	if a.cfg.StrictOutput {
		if err := llm.ValidateOutput(raw); err != nil {
			log.Error("model output failed schema validation", zap.Error(err))
			metrics.RecommendationRequests.WithLabelValues("500").Inc()
			respondErrorRaw(w, http.StatusInternalServerError, err.Error(), raw)
			return
		}
	}

	log.Info("recommendations generated", zap.Duration("generation", time.Since(start)))
	metrics.RecommendationRequests.WithLabelValues("200").Inc()
	respondJSON(w, http.StatusOK, result)
}

func (a *API) fail(w http.ResponseWriter, status int, msg string) {
	metrics.RecommendationRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	respondError(w, status, msg)
}
