package travel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/officura/officura/internal/platform/aigateway"
)

const recommendationsPrompt = `Tu es un expert en médecine des voyages et santé internationale. Tu fournis des recommandations sanitaires pour les voyageurs français RÉSIDANT EN FRANCE et partant de France.

## CONTEXTE ESSENTIEL
Le pays de départ est TOUJOURS la France.

## RÈGLES POUR LES VACCINS OBLIGATOIRES
- Un vaccin est "obligatoire" UNIQUEMENT s'il est exigé pour l'entrée dans le pays de destination pour un voyageur VENANT DE FRANCE.
- La fièvre jaune n'est PAS obligatoire pour un voyageur partant de France (sauf réglementation spécifique d'entrée), mais FORTEMENT RECOMMANDÉE en zone d'endémie.

## RÈGLES ÉDITORIALES
- Ne jamais copier mot pour mot des contenus de sites tiers
- Synthétiser, reformuler et hiérarchiser (priorité pratique pour le voyageur)
- Phrases courtes et actionnables

Pour chaque pays, fournis de manière SYNTHÉTISÉE :
1. Les vaccinations obligatoires (UNIQUEMENT celles exigées à l'entrée depuis la France)
2. Les vaccinations recommandées (incluant fièvre jaune si zone d'endémie)
3. Les informations sur le paludisme (zones à risque, prophylaxie)
4. Les conseils pratiques de prévention

Réponds UNIQUEMENT avec un JSON valide sans markdown :
{
  "vaccinsObligatoires": [{ "name": "...", "note": "..." }],
  "vaccinsRecommandes": [{ "name": "...", "note": "..." }],
  "prophylaxies": [{ "name": "Paludisme", "zone": "...", "traitement": "...", "duree": "...", "contrindications": "..." }],
  "conseils": ["..."]
}

Si le paludisme n'est pas présent, retourne un tableau prophylaxies vide.
Si aucun vaccin n'est obligatoire à l'entrée depuis la France, retourne un tableau vaccinsObligatoires vide.`

const countrySearchPrompt = `Tu es un assistant qui aide à trouver des noms de pays.
Retourne UNIQUEMENT un tableau JSON de noms de pays (en français) qui COMMENCENT par les lettres fournies.
Maximum 8 pays. Ne retourne que les pays existants.
Format: ["Pays1", "Pays2", ...]
Pas de markdown, juste le tableau JSON.`

const summaryPrompt = `Tu es un expert en médecine des voyages. Tu dois créer un document synthétique et professionnel pour un voyageur, en texte brut, clair et facilement imprimable.

Crée un document COMPLET avec :
1. Un titre clair avec le pays et la date
2. Une section "Vaccinations obligatoires"
3. Une section "Vaccinations recommandées"
4. Une section "Prévention du paludisme" si applicable
5. Une section "Conseils pratiques" numérotés
6. Un rappel de consulter un médecin avant le voyage

Réponds UNIQUEMENT avec le document texte, sans markdown.`

// Service runs the travel lookups against the AI gateway.
type Service struct {
	gateway *aigateway.Client
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a travel service.
func NewService(gateway *aigateway.Client, logger zerolog.Logger) *Service {
	return &Service{gateway: gateway, logger: logger, now: time.Now}
}

// Recommendations fetches the destination sheet for a country.
func (s *Service) Recommendations(ctx context.Context, country string) (*Recommendations, error) {
	user := fmt.Sprintf(`Quelles sont les recommandations sanitaires et vaccinales pour un voyageur RÉSIDANT EN FRANCE qui part vers %s ?

RAPPEL IMPORTANT :
- Le voyageur part DE FRANCE (pas d'une zone d'endémie)
- Indique comme "obligatoire" UNIQUEMENT les vaccins exigés pour l'entrée dans le pays
- REFORMULE toutes les informations avec tes propres mots`, country)

	var recs Recommendations
	err := s.gateway.CompleteJSON(ctx, []aigateway.Message{
		{Role: "system", Content: recommendationsPrompt},
		{Role: "user", Content: user},
	}, &recs)
	if err != nil {
		return nil, err
	}
	return &recs, nil
}

// SearchCountries returns country names starting with the given fragment.
// Fragments under two characters and unparseable answers yield an empty
// list rather than an error.
func (s *Service) SearchCountries(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return []string{}, nil
	}

	var countries []string
	err := s.gateway.CompleteJSON(ctx, []aigateway.Message{
		{Role: "system", Content: countrySearchPrompt},
		{Role: "user", Content: fmt.Sprintf(`Liste les pays dont le nom commence par "%s"`, term)},
	}, &countries)
	if err != nil {
		switch {
		case isGatewayError(err):
			return nil, err
		default:
			s.logger.Warn().Err(err).Str("term", term).Msg("country search answer unparseable")
			return []string{}, nil
		}
	}
	return countries, nil
}

func isGatewayError(err error) bool {
	for _, sentinel := range []error{
		aigateway.ErrRateLimited,
		aigateway.ErrPaymentRequired,
		aigateway.ErrNotConfigured,
		aigateway.ErrEmptyResponse,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Summary composes the printable trip document from a fetched sheet.
func (s *Service) Summary(ctx context.Context, country string, data *Recommendations) (*Summary, error) {
	user := fmt.Sprintf(`Crée un document synthétique pour un voyage en %s avec ces données :

VACCINS OBLIGATOIRES:
%s

VACCINS RECOMMANDÉS:
%s

PROPHYLAXIE PALUDISME:
%s

CONSEILS:
%s

Date de génération: %s`,
		country,
		formatVaccines(data.VaccinsObligatoires),
		formatVaccines(data.VaccinsRecommandes),
		formatProphylaxies(data.Prophylaxies),
		formatConseils(data.Conseils),
		s.now().Format("02/01/2006"))

	text, err := s.gateway.Complete(ctx, []aigateway.Message{
		{Role: "system", Content: summaryPrompt},
		{Role: "user", Content: user},
	})
	if err != nil {
		return nil, err
	}

	return &Summary{
		Content:  aigateway.StripFences(text),
		Filename: summaryFilename(country),
	}, nil
}

func summaryFilename(country string) string {
	slug := strings.ToLower(strings.TrimSpace(country))
	slug = strings.Join(strings.Fields(slug), "-")
	return "prevention-voyage-" + slug + ".txt"
}

func formatVaccines(vaccines []Vaccine) string {
	if len(vaccines) == 0 {
		return "Aucun"
	}
	lines := make([]string, 0, len(vaccines))
	for _, v := range vaccines {
		lines = append(lines, fmt.Sprintf("- %s: %s", v.Name, v.Note))
	}
	return strings.Join(lines, "\n")
}

func formatProphylaxies(items []Prophylaxis) string {
	if len(items) == 0 {
		return "Non applicable pour ce pays"
	}
	lines := make([]string, 0, len(items))
	for _, p := range items {
		lines = append(lines, fmt.Sprintf("Zone: %s\nTraitement: %s\nDurée: %s\nContre-indications: %s",
			p.Zone, p.Traitement, p.Duree, p.Contrindications))
	}
	return strings.Join(lines, "\n\n")
}

func formatConseils(conseils []string) string {
	if len(conseils) == 0 {
		return "Aucun conseil spécifique"
	}
	lines := make([]string, 0, len(conseils))
	for i, c := range conseils {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
	}
	return strings.Join(lines, "\n")
}
