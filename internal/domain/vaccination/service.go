package vaccination

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/officura/officura/internal/platform/aigateway"
)

const advicePrompt = `Tu es un expert du calendrier vaccinal français 2024-2025.
Réponds UNIQUEMENT avec un JSON valide sans markdown de la forme:
{"recommandations": ["conseil personnalisé 1", "conseil personnalisé 2"]}`

// Service runs the deterministic classification and, when the gateway is
// configured, enriches the recommendations with personalized advice. Gateway
// failures never fail the analysis.
type Service struct {
	gateway *aigateway.Client
	logger  zerolog.Logger
}

// NewService creates a vaccination service. gateway may be nil.
func NewService(gateway *aigateway.Client, logger zerolog.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// Analyze classifies the patient's vaccination status.
func (s *Service) Analyze(ctx context.Context, age int, completed []string, sex string, pregnant bool) Analysis {
	analysis := Classify(age, completed, sex, pregnant)

	if s.gateway != nil && s.gateway.Configured() {
		if advice, err := s.fetchAdvice(ctx, age, completed, sex, pregnant); err != nil {
			s.logger.Warn().Err(err).Msg("vaccination advice enrichment failed")
		} else {
			analysis.Recommandations = append(analysis.Recommandations, advice...)
		}
	}
	return analysis
}

func (s *Service) fetchAdvice(ctx context.Context, age int, completed []string, sex string, pregnant bool) ([]string, error) {
	if sex == "" {
		sex = "non précisé"
	}
	doneList := "aucun indiqué"
	if len(completed) > 0 {
		doneList = strings.Join(completed, ", ")
	}
	pregnancy := ""
	if pregnant {
		pregnancy = " La patiente est enceinte."
	}

	user := fmt.Sprintf(
		"Patient de %d ans, sexe: %s.%s Vaccins déjà réalisés et à jour: %s. Donne 2 à 4 conseils personnalisés courts.",
		age, sex, pregnancy, doneList,
	)

	var out struct {
		Recommandations []string `json:"recommandations"`
	}
	err := s.gateway.CompleteJSON(ctx, []aigateway.Message{
		{Role: "system", Content: advicePrompt},
		{Role: "user", Content: user},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Recommandations, nil
}
