package vaccination

import (
	"fmt"
	"strings"
)

// Classify partitions the schedule for one patient. The evaluation is pure:
// same input, same partitions. A completed vaccine never lands in enRetard
// or nonRattrapables; a closed window without completion always lands in
// nonRattrapables.
func Classify(age int, completed []string, sex string, pregnant bool) Analysis {
	done := normalizeCompleted(completed)

	analysis := Analysis{
		EnRetard:        []Overdue{},
		AVenir:          []Upcoming{},
		NonRattrapables: []NotCatchable{},
	}

	for _, rule := range schedule {
		if done[strings.ToLower(rule.ID)] || done[strings.ToLower(rule.Label)] {
			if up, ok := nextBooster(rule, age); ok {
				analysis.AVenir = append(analysis.AVenir, up)
			}
			continue
		}

		switch {
		case age < rule.StartAge:
			analysis.AVenir = append(analysis.AVenir, Upcoming{
				Name:    rule.Label,
				NextAge: rule.DueAge,
				Note:    rule.Note,
			})
		case rule.CatchUpMaxAge == NoLimit || age <= rule.CatchUpMaxAge:
			analysis.EnRetard = append(analysis.EnRetard, Overdue{
				Name:        rule.Label,
				DueAge:      rule.DueAge,
				Note:        rule.Note,
				CanCatchUp:  true,
				CatchUpInfo: rule.CatchUpInfo,
			})
		default:
			analysis.NonRattrapables = append(analysis.NonRattrapables, NotCatchable{
				Name:   rule.Label,
				Reason: rule.LateReason,
			})
		}
	}

	analysis.Recommandations = baseRecommendations(age, pregnant, len(analysis.EnRetard) > 0)
	return analysis
}

// nextBooster returns the upcoming entry for an already completed vaccine
// that still has boosters ahead.
func nextBooster(rule Rule, age int) (Upcoming, bool) {
	if rule.Annual && age >= rule.StartAge {
		return Upcoming{
			Name:    rule.Label,
			NextAge: "chaque année",
			Note:    "Rappel annuel lors de la campagne d'automne.",
		}, true
	}

	if len(rule.Boosters) == 0 {
		return Upcoming{}, false
	}

	for _, b := range rule.Boosters {
		if b > age {
			return Upcoming{
				Name:    rule.Label,
				NextAge: fmt.Sprintf("%d ans", b),
				Note:    "Prochain rappel prévu par le calendrier vaccinal.",
			}, true
		}
	}

	if rule.BoosterEvery > 0 {
		last := rule.Boosters[len(rule.Boosters)-1]
		next := last
		for next <= age {
			next += rule.BoosterEvery
		}
		return Upcoming{
			Name:    rule.Label,
			NextAge: fmt.Sprintf("%d ans", next),
			Note:    fmt.Sprintf("Rappel tous les %d ans après %d ans.", rule.BoosterEvery, last),
		}, true
	}

	return Upcoming{}, false
}

func baseRecommendations(age int, pregnant bool, hasOverdue bool) []string {
	recs := []string{}

	if pregnant {
		recs = append(recs,
			"Grossesse : rappel coqueluche (dTcaP) recommandé à chaque grossesse, entre 20 et 36 SA.",
			"Grossesse : vaccination grippe et COVID-19 recommandée quelle que soit la saison.",
		)
	}
	if age >= 11 && age <= 14 {
		recs = append(recs, "Entre 11 et 14 ans : HPV (2 doses) et méningocoque ACWY sont à proposer systématiquement.")
	}
	if age >= 60 && age < 65 {
		recs = append(recs, "Dès 60 ans : vaccination VRS possible ; anticipez les vaccins des 65 ans (grippe, zona, pneumocoque).")
	}
	if age >= 65 {
		recs = append(recs, "À partir de 65 ans : grippe annuelle, zona, pneumocoque (Prevenar 20) et rappel COVID d'automne recommandés.")
	}
	if hasOverdue {
		recs = append(recs, "Des rattrapages sont possibles : un avis médical ou pharmaceutique confirmera le schéma adapté.")
	}
	recs = append(recs, "Analyse basée sur le calendrier vaccinal officiel - Santé publique France.")
	return recs
}

func normalizeCompleted(completed []string) map[string]bool {
	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		c = strings.TrimSpace(strings.ToLower(c))
		if c != "" {
			done[c] = true
		}
	}
	return done
}
