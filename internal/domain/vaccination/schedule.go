package vaccination

// schedule is the French 2024-2025 immunization calendar reduced to the
// counter's decision table: scheduled age, catch-up window, booster cadence.
// Clinical values come from the official Santé publique France calendar and
// should be revalidated against it on each yearly update.
var schedule = []Rule{
	{
		ID:            "dtcp",
		Label:         "DTCP (Diphtérie-Tétanos-Coqueluche-Polio)",
		Category:      CategoryMandatory,
		DueAge:        "2 mois",
		StartAge:      0,
		CatchUpMaxAge: NoLimit,
		Note:          "Primo-vaccination du nourrisson, rappels à 25, 45 et 65 ans puis tous les 10 ans.",
		CatchUpInfo:   "Rattrapage possible à tout âge, schéma adapté selon les doses reçues.",
		Boosters:      []int{25, 45, 65},
		BoosterEvery:  10,
	},
	{
		ID:            "hepatiteB",
		Label:         "Hépatite B",
		Category:      CategoryMandatory,
		DueAge:        "2 mois",
		StartAge:      0,
		CatchUpMaxAge: NoLimit,
		Note:          "Obligatoire pour les nourrissons nés depuis 2018.",
		CatchUpInfo:   "Rattrapage possible à tout âge (3 doses).",
	},
	{
		ID:            "pneumocoque",
		Label:         "Pneumocoque (Prevenar)",
		Category:      CategoryMandatory,
		DueAge:        "2 mois",
		StartAge:      0,
		CatchUpMaxAge: 2,
		Note:          "Schéma nourrisson 2+1 (2, 4, 11 mois), Prevenar 20 en cours de déploiement.",
		CatchUpInfo:   "Schéma adapté jusqu'à 2 ans.",
		LateReason:    "Schéma nourrisson non rattrapable après 2 ans. Prevenar 20 possible chez l'adulte à risque ou dès 65 ans.",
	},
	{
		ID:            "hib",
		Label:         "Haemophilus influenzae b",
		Category:      CategoryMandatory,
		DueAge:        "2 mois",
		StartAge:      0,
		CatchUpMaxAge: 5,
		Note:          "Inclus dans le vaccin hexavalent du nourrisson.",
		CatchUpInfo:   "Rattrapage uniquement jusqu'à 5 ans.",
		LateReason:    "Rattrapage impossible après 5 ans.",
	},
	{
		ID:            "meningocoqueC",
		Label:         "Méningocoque C",
		Category:      CategoryMandatory,
		DueAge:        "5 mois",
		StartAge:      0,
		CatchUpMaxAge: 24,
		Note:          "Une dose à 5 mois, rappel à 12 mois.",
		CatchUpInfo:   "Rattrapage possible jusqu'à 24 ans.",
		LateReason:    "Rattrapage impossible après 24 ans.",
	},
	{
		ID:            "ror",
		Label:         "ROR (Rougeole-Oreillons-Rubéole)",
		Category:      CategoryMandatory,
		DueAge:        "12 mois",
		StartAge:      1,
		CatchUpMaxAge: NoLimit,
		Note:          "Deux doses (12 et 16-18 mois).",
		CatchUpInfo:   "Rattrapage possible à tout âge (2 doses pour les personnes nées après 1980).",
	},
	{
		ID:            "meningocoqueB",
		Label:         "Méningocoque B (Bexsero)",
		Category:      CategoryRecommended,
		DueAge:        "3 mois",
		StartAge:      0,
		CatchUpMaxAge: 24,
		Note:          "Recommandé pour tous les nourrissons depuis 2021.",
		CatchUpInfo:   "Rattrapage possible jusqu'à 24 ans.",
		LateReason:    "Rattrapage impossible après 24 ans.",
	},
	{
		ID:            "meningocoqueACWY",
		Label:         "Méningocoque ACWY",
		Category:      CategoryRecommended,
		DueAge:        "11-14 ans",
		StartAge:      11,
		CatchUpMaxAge: 24,
		Note:          "Recommandé à 11-14 ans, obligatoire pour certains voyages.",
		CatchUpInfo:   "Rattrapage possible jusqu'à 24 ans.",
		LateReason:    "Rattrapage impossible après 24 ans hors indication voyage.",
	},
	{
		ID:            "hpv",
		Label:         "HPV (Papillomavirus)",
		Category:      CategoryRecommended,
		DueAge:        "11-14 ans",
		StartAge:      11,
		CatchUpMaxAge: 19,
		Note:          "2 doses entre 11 et 14 ans, filles et garçons.",
		CatchUpInfo:   "Rattrapage 15-19 ans (3 doses), jusqu'à 26 ans pour les HSH.",
		LateReason:    "Rattrapage impossible après 19 ans (26 ans pour les HSH).",
	},
	{
		ID:            "varicelle",
		Label:         "Varicelle",
		Category:      CategoryRecommended,
		DueAge:        "12-18 ans",
		StartAge:      12,
		CatchUpMaxAge: NoLimit,
		Note:          "Pour les adolescents et adultes sans antécédent de varicelle.",
		CatchUpInfo:   "2 doses chez les personnes non immunisées.",
	},
	{
		ID:            "bcg",
		Label:         "BCG (Tuberculose)",
		Category:      CategoryRecommended,
		DueAge:        "1 mois",
		StartAge:      0,
		CatchUpMaxAge: 15,
		Note:          "Recommandé pour les enfants à risque élevé de tuberculose.",
		CatchUpInfo:   "Rattrapage possible jusqu'à 15 ans chez les enfants à risque.",
		LateReason:    "Rattrapage impossible après 15 ans.",
	},
	{
		ID:            "hepatiteA",
		Label:         "Hépatite A",
		Category:      CategoryRecommended,
		DueAge:        "selon exposition",
		StartAge:      1,
		CatchUpMaxAge: NoLimit,
		Note:          "Recommandé selon exposition (voyage, entourage, profession).",
		CatchUpInfo:   "Possible à tout âge, 2 doses.",
	},
	{
		ID:       "grippe",
		Label:    "Grippe (annuel)",
		Category: CategorySenior,
		DueAge:   "65 ans",
		StartAge: 65,
		// An annual vaccine is never late for good: the next campaign is
		// always ahead.
		CatchUpMaxAge: NoLimit,
		Note:          "Vaccination annuelle dès 65 ans ou en cas de facteur de risque.",
		CatchUpInfo:   "Chaque automne, lors de la campagne de vaccination.",
		Annual:        true,
	},
	{
		ID:            "zona",
		Label:         "Zona (Shingrix)",
		Category:      CategorySenior,
		DueAge:        "65 ans",
		StartAge:      65,
		CatchUpMaxAge: NoLimit,
		Note:          "2 doses dès 65 ans.",
		CatchUpInfo:   "Possible à tout âge à partir de 65 ans.",
	},
	{
		ID:            "pneumocoqueAdulte",
		Label:         "Pneumocoque adulte (Prevenar 20)",
		Category:      CategorySenior,
		DueAge:        "65 ans",
		StartAge:      65,
		CatchUpMaxAge: NoLimit,
		Note:          "1 dose dès 65 ans, même après Prevenar 13. Recommandé à tout âge chez les personnes à risque.",
		CatchUpInfo:   "1 dose, sans limite d'âge.",
	},
	{
		ID:            "covid",
		Label:         "COVID-19",
		Category:      CategorySenior,
		DueAge:        "65 ans",
		StartAge:      65,
		CatchUpMaxAge: NoLimit,
		Note:          "Rappel recommandé chaque automne dès 65 ans ou en cas de facteur de risque.",
		CatchUpInfo:   "Lors de la campagne d'automne.",
		Annual:        true,
	},
	{
		ID:            "vrs",
		Label:         "VRS (Virus Respiratoire Syncytial)",
		Category:      CategorySenior,
		DueAge:        "60 ans",
		StartAge:      60,
		CatchUpMaxAge: NoLimit,
		Note:          "Abrysvo ou Arexvy dès 60 ans (recommandation 2024).",
		CatchUpInfo:   "1 dose dès 60 ans.",
	},
}

// Schedule returns the full rule table in display order.
func Schedule() []Rule {
	return schedule
}
