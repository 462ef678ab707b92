package screening

// Variant identifiers.
const (
	VariantCystitis = "trod-cystite"
	VariantAngina   = "trod-angine"
	VariantFluCovid = "test-grippe-covid"
)

const (
	successCriteria   = "Les critères réglementaires sont réunis."
	successConditions = "Les conditions de réalisation sont réunies."
	successProtocol   = "Le test peut être réalisé selon le protocole en vigueur."
	referralAdvised   = "Une orientation médicale est recommandée."
)

// cystitis is the supervised dispensing protocol for the cystitis rapid
// test: a strict gate sequence, no scoring.
var cystitis = &Definition{
	Variant:              VariantCystitis,
	Title:                "TROD Cystite",
	StopSubMessage:       referralAdvised,
	StopSubMessageUrgent: "Orientation médicale urgente recommandée.",
	Gates: []GateQuestion{
		{
			Text:        "La personne est-elle une femme ?",
			Effect:      StopIfNo,
			StopMessage: "Test réservé aux femmes. Orientation médicale recommandée.",
		},
		{
			Text:        "A-t-elle entre 16 et 65 ans ?",
			Effect:      StopIfNo,
			StopMessage: "Âge hors critères (16-65 ans requis). Orientation médicale recommandée.",
		},
		{
			Text:        "Présente-t-elle des symptômes urinaires évocateurs (brûlures, pollakiurie, urgenturie) ?",
			Effect:      StopIfNo,
			StopMessage: "Absence de symptômes évocateurs. Test non indiqué.",
		},
		{
			Text:        "Consentement obtenu pour la réalisation du test ?",
			Effect:      StopIfNo,
			StopMessage: "Consentement requis pour réaliser le test.",
		},
		{
			Text:        "Grossesse connue ou non exclue ?",
			Effect:      StopIfYes,
			StopMessage: "Grossesse = critère d'exclusion. Orientation médicale recommandée.",
		},
		{
			Text:        "Symptômes gynécologiques associés (leucorrhées, prurit, dyspareunie) ?",
			Effect:      StopIfYes,
			StopMessage: "Symptômes gynécologiques associés. Orientation médicale recommandée.",
		},
		{
			Text:        "Trois cystites ou plus sur les 12 derniers mois ?",
			Effect:      StopIfYes,
			StopMessage: "Cystites récidivantes. Orientation médicale recommandée.",
		},
		{
			Text:        "Cystite récente non résolue (< 15 jours) ?",
			Effect:      StopIfYes,
			StopMessage: "Cystite récente non résolue. Orientation médicale recommandée.",
		},
		{
			Text:        "Anomalie connue de l'appareil urinaire ?",
			Effect:      StopIfYes,
			StopMessage: "Anomalie urologique connue. Orientation médicale recommandée.",
		},
		{
			Text:        "Immunodépression ou traitement immunosuppresseur ?",
			Effect:      StopIfYes,
			StopMessage: "Immunodépression. Orientation médicale recommandée.",
		},
		{
			Text:        "Port d'un cathéter urinaire ?",
			Effect:      StopIfYes,
			StopMessage: "Cathéter urinaire en place. Orientation médicale recommandée.",
		},
		{
			Text:        "Insuffisance rénale sévère connue ?",
			Effect:      StopIfYes,
			StopMessage: "Insuffisance rénale sévère. Orientation médicale recommandée.",
		},
		{
			Text:        "Antibiothérapie en cours ?",
			Effect:      StopIfYes,
			StopMessage: "Antibiothérapie en cours. Orientation médicale recommandée.",
		},
		{
			Text:        "Prise de fluoroquinolones dans les 3 derniers mois ?",
			Effect:      StopIfYes,
			StopMessage: "Prise récente de fluoroquinolones. Orientation médicale recommandée.",
		},
		{
			Text:        "Fièvre > 38 °C ou douleurs lombaires ?",
			Effect:      StopIfYes,
			StopMessage: "Signes évocateurs de pyélonéphrite. Orientation médicale URGENTE.",
			Urgent:      true,
		},
	},
	SuccessMessage:    successCriteria,
	SuccessSubMessage: successProtocol,
}

// angina combines two preliminary gates with the Mac Isaac score. A final
// score of 2 or more indicates the test. Its preliminary stops carry no
// sub-message; the stop message is the whole guidance.
var angina = &Definition{
	Variant: VariantAngina,
	Title:   "TROD Angine (Score Mac Isaac)",
	Gates: []GateQuestion{
		{
			Text:        "Angine érythémateuse ou érythémato-pultacée observée ?",
			Effect:      StopIfNo,
			StopMessage: "Type d'angine non compatible avec le TROD. Orientation médicale recommandée.",
		},
		{
			Text:        "Patient âgé de 3 ans ou plus ?",
			Effect:      StopIfNo,
			StopMessage: "Patient trop jeune (< 3 ans). Orientation médicale recommandée.",
		},
	},
	Scoring: []ScoreQuestion{
		{Text: "Fièvre > 38 °C ?", Points: 1},
		{Text: "Absence de toux ?", Points: 1},
		{Text: "Adénopathies cervicales antérieures sensibles ?", Points: 1},
		{Text: "Atteinte amygdalienne (augmentation de volume ou exsudat) ?", Points: 1},
	},
	AgeQuestion: "Âge du patient ?",
	AgeBuckets: []AgeBucket{
		{Label: "3-14 ans", Value: "3-14", Points: 1},
		{Label: "15-44 ans", Value: "15-44", Points: 0},
		{Label: "≥ 45 ans", Value: "45+", Points: -1},
	},
	Threshold:           2,
	SuccessMessage:      "Les critères sont réunis pour réaliser un TROD angine.",
	SuccessSubMessage:   successProtocol,
	FailScoreMessage:    "Score Mac Isaac insuffisant pour indication du TROD.",
	FailScoreSubMessage: "Pas d'indication à réaliser le test. Orientation symptomatique.",
}

// fluCovid is the antigen test protocol: directional gates, two of which
// only raise warnings.
var fluCovid = &Definition{
	Variant:              VariantFluCovid,
	Title:                "Test antigénique Grippe / COVID",
	StopSubMessage:       referralAdvised,
	StopSubMessageUrgent: "Orientation médicale URGENTE recommandée.",
	Gates: []GateQuestion{
		{
			Text:        "Symptômes respiratoires aigus présents (toux, fièvre, maux de gorge, courbatures) ?",
			Effect:      StopIfNo,
			StopMessage: "Absence de symptômes respiratoires. Test non pertinent.",
		},
		{
			Text:           "Symptômes apparus depuis moins de 4 jours ?",
			Effect:         WarnIfNo,
			WarningMessage: "Symptômes > 4 jours : fiabilité du test diminuée",
		},
		{
			Text:        "Présence de signes de gravité (détresse respiratoire, confusion, cyanose) ?",
			Effect:      StopIfYes,
			StopMessage: "Signes de gravité présents.",
			Urgent:      true,
		},
		{
			Text:        "Saturation basse connue ou pathologie respiratoire sévère (BPCO sévère, insuffisance respiratoire) ?",
			Effect:      StopIfYes,
			StopMessage: "Pathologie respiratoire sévère. Orientation médicale recommandée.",
		},
		{
			Text:           "Patient à risque de forme grave (âge > 65 ans, immunodépression, comorbidités) ?",
			Effect:         WarnIfYes,
			WarningMessage: "Patient à risque : vigilance accrue requise",
		},
		{
			Text:           "Test grippe ou COVID positif récent (< 10 jours) ?",
			Effect:         WarnIfYes,
			WarningMessage: "Test positif récent : intérêt limité d'un nouveau test",
		},
		{
			Text:        "Consentement du patient obtenu ?",
			Effect:      StopIfNo,
			StopMessage: "Consentement requis pour réaliser le test.",
		},
	},
	SuccessMessage:    successConditions,
	SuccessSubMessage: successProtocol,
}

// variants holds all registered questionnaires in display order.
var variants = []*Definition{cystitis, angina, fluCovid}

// Variants returns the registered questionnaire definitions.
func Variants() []*Definition {
	return variants
}

// Lookup returns the definition for a variant identifier.
func Lookup(variant string) (*Definition, error) {
	for _, d := range variants {
		if d.Variant == variant {
			return d, nil
		}
	}
	return nil, ErrUnknownVariant
}
