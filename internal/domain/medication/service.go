package medication

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/officura/officura/internal/platform/aigateway"
)

// Service combines the local catalog with the gateway-backed lookups.
type Service struct {
	catalog *Catalog
	gateway *aigateway.Client
	logger  zerolog.Logger
}

// NewService creates a medication service.
func NewService(catalog *Catalog, gateway *aigateway.Client, logger zerolog.Logger) *Service {
	return &Service{catalog: catalog, gateway: gateway, logger: logger}
}

// Search queries the local catalog.
func (s *Service) Search(query string) []string {
	return s.catalog.Search(query)
}

// CatalogSize returns the number of loaded catalog entries.
func (s *Service) CatalogSize() int {
	return s.catalog.Len()
}

// Info fetches one information sheet (contraindications, pregnancy,
// breastfeeding or advice) for a medication.
func (s *Service) Info(ctx context.Context, name, mode string) (*aigateway.Report, error) {
	p, ok := infoPrompts[mode]
	if !ok {
		return nil, ErrUnknownMode
	}

	user := fmt.Sprintf(`Fournis une SYNTHÈSE REFORMULÉE pour le médicament français: %s

INSTRUCTIONS :
1. Synthétise les informations essentielles pour le comptoir
2. Reformule avec tes propres mots
3. Phrases courtes et actionnables`, name)

	return s.gateway.AnalyzeReport(ctx, []aigateway.Message{
		{Role: "system", Content: p.system},
		{Role: "user", Content: user},
	}, aigateway.ReportTool(p.toolName, p.toolDesc))
}

// Interactions analyzes the interaction between two medications.
func (s *Service) Interactions(ctx context.Context, med1, med2 string) (*aigateway.Report, error) {
	user := fmt.Sprintf(`Analyse et SYNTHÉTISE les interactions entre "%s" et "%s".

INSTRUCTIONS :
1. Identifie les molécules actives (DCI) de chaque médicament
2. Classe selon la classification officielle
3. Reformule le mécanisme et la conduite à tenir
4. Phrases courtes et actionnables pour le comptoir

Si aucune interaction n'est connue, indique-le clairement.`, med1, med2)

	return s.gateway.AnalyzeReport(ctx, []aigateway.Message{
		{Role: "system", Content: interactionsPrompt},
		{Role: "user", Content: user},
	}, aigateway.ReportTool("extract_interactions", "Synthétiser les interactions médicamenteuses"))
}

// PhytoInteractions analyzes the interaction between a medication and a
// medicinal plant.
func (s *Service) PhytoInteractions(ctx context.Context, med, plant string) (*aigateway.Report, error) {
	user := fmt.Sprintf(`Analyse et SYNTHÉTISE les interactions entre le médicament "%s" et la plante "%s".

Classe selon la classification officielle et propose une conduite à tenir claire.`, med, plant)

	return s.gateway.AnalyzeReport(ctx, []aigateway.Message{
		{Role: "system", Content: phytoPrompt},
		{Role: "user", Content: user},
	}, aigateway.ReportTool("extract_phytotherapy_interactions", "Synthétiser les interactions médicament-plante"))
}

// Dosage fetches the synthesized dosage table for a medication.
func (s *Service) Dosage(ctx context.Context, name string) (*DosageResult, error) {
	user := fmt.Sprintf(`Fournis les posologies SYNTHÉTISÉES pour le médicament français: %s

INSTRUCTIONS :
1. Posologies par tranche d'âge et de poids
2. Doses maximales et précautions incluses
3. Phrases courtes et actionnables pour le comptoir`, name)

	tool := aigateway.NewTool("extract_dosages", "Synthétiser les posologies d'un médicament français", dosageSchema)
	args, err := s.gateway.CallTool(ctx, []aigateway.Message{
		{Role: "system", Content: dosagePrompt},
		{Role: "user", Content: user},
	}, tool)
	if err != nil {
		return nil, err
	}

	var result DosageResult
	if err := json.Unmarshal(args, &result); err != nil {
		return nil, fmt.Errorf("medication: decode dosages: %w", err)
	}
	return &result, nil
}

// Equivalence fetches the equivalence analysis for a medication.
func (s *Service) Equivalence(ctx context.Context, name string) (*EquivalenceResult, error) {
	user := fmt.Sprintf(`Recherche les équivalences SYNTHÉTISÉES pour le médicament : "%s"

INSTRUCTIONS :
1. Vérifie que ce médicament existe en France
2. Identifie sa molécule active EXACTE et son dosage EXACT
3. Ne liste que des équivalents certains
4. Termine par "Synthèse fondée sur les référentiels cliniques reconnus"`, name)

	tool := aigateway.NewTool("display_equivalences", "Afficher les équivalences synthétisées d'un médicament", equivalenceSchema)
	args, err := s.gateway.CallTool(ctx, []aigateway.Message{
		{Role: "system", Content: equivalencePrompt},
		{Role: "user", Content: user},
	}, tool)
	if err != nil {
		return nil, err
	}

	var result EquivalenceResult
	if err := json.Unmarshal(args, &result); err != nil {
		return nil, fmt.Errorf("medication: decode equivalences: %w", err)
	}
	return &result, nil
}
