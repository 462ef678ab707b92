package medication

import "encoding/json"

// editorialRules is shared by every lookup prompt: the gateway must
// synthesize for counter use, never reproduce third-party content.
const editorialRules = `
## RÈGLES ÉDITORIALES OBLIGATOIRES
- Ne jamais copier mot pour mot des contenus de sites tiers
- Synthétiser, reformuler et hiérarchiser pour la pratique officinale
- Phrases courtes, lisibles au comptoir
- Sources citables : ANSM, HAS, Santé publique France
- Présenter comme : "Synthèse fondée sur les référentiels cliniques reconnus"`

// infoPrompts maps each info mode to its system prompt and tool definition.
var infoPrompts = map[string]struct {
	system   string
	toolName string
	toolDesc string
}{
	ModeContraindications: {
		system: `Tu es un expert médical français spécialisé dans l'analyse des contre-indications médicamenteuses.
` + editorialRules + `

### CLASSIFICATION DE SÉVÉRITÉ
- critical : contre-indication ABSOLUE
- high : association DÉCONSEILLÉE
- medium : précaution d'emploi
- low : à prendre en compte
- safe : pas de contre-indication connue`,
		toolName: "extract_contraindications",
		toolDesc: "Synthétiser les contre-indications d'un médicament français",
	},
	ModePregnancy: {
		system: `Tu es un expert médical français spécialisé dans l'utilisation des médicaments pendant la grossesse.
` + editorialRules + `

### CLASSIFICATION
- critical : CONTRE-INDIQUÉ pendant la grossesse
- high : DÉCONSEILLÉ (à éviter si possible)
- medium : utilisation POSSIBLE avec précautions
- low : utilisable (données rassurantes)
- safe : médicament de choix pendant la grossesse

Distinguer les trimestres si applicable.`,
		toolName: "extract_pregnancy_info",
		toolDesc: "Synthétiser les informations sur l'usage pendant la grossesse",
	},
	ModeBreastfeeding: {
		system: `Tu es un expert médical français spécialisé dans l'utilisation des médicaments pendant l'allaitement.
` + editorialRules + `

### CLASSIFICATION
- critical : CONTRE-INDIQUÉ pendant l'allaitement
- high : allaitement DÉCONSEILLÉ sous ce traitement
- medium : utilisation POSSIBLE avec surveillance du nourrisson
- low : compatible (données rassurantes)
- safe : compatible, de choix pendant l'allaitement

Synthétiser le passage dans le lait maternel et les effets sur le nourrisson.`,
		toolName: "extract_breastfeeding_info",
		toolDesc: "Synthétiser les informations sur l'usage pendant l'allaitement",
	},
	ModeAdvice: {
		system: `Tu es un expert médical français spécialisé dans les indications thérapeutiques et modalités de prise.
` + editorialRules + `

### INFORMATIONS À FOURNIR
- Indications principales
- Moment de prise (avant/pendant/après repas)
- Précautions pratiques et durée de traitement

### CLASSIFICATION
- safe : indications validées
- medium : mises en garde importantes
- high/critical : précautions majeures`,
		toolName: "extract_indications_and_advice",
		toolDesc: "Synthétiser les indications et conseils de prise",
	},
}

const interactionsPrompt = `Tu es un expert pharmacologue français spécialisé dans les interactions médicamenteuses.
` + editorialRules + `

### CLASSIFICATION OFFICIELLE
1. Contre-indication (critical) : association INTERDITE
2. Association déconseillée (high) : à ÉVITER
3. Précaution d'emploi (medium) : POSSIBLE avec surveillance
4. À prendre en compte (low) : vigilance recommandée
5. Pas d'interaction connue (safe)

Identifie les molécules actives (DCI), pas les noms commerciaux.
En cas de doute, classe en "medium" et recommande l'avis du pharmacien.`

const phytoPrompt = `Tu es un expert français des interactions entre médicaments et plantes médicinales.
` + editorialRules + `

### CLASSIFICATION
- critical : association interdite
- high : association déconseillée
- medium : précaution d'emploi
- low : à prendre en compte
- safe : pas d'interaction connue

Base-toi sur les données de pharmacognosie reconnues (millepertuis, ginkgo, etc.).
En cas de doute, classe en "medium" et recommande l'avis du pharmacien.`

const dosagePrompt = `Tu es un expert médical français spécialisé dans les posologies médicamenteuses.
` + editorialRules + `

### RÈGLES DE PRÉCISION
- Posologies exactes, conformes aux données officielles françaises
- Ne JAMAIS inventer ou approximer une posologie
- En cas de doute, indiquer "À confirmer avec le professionnel de santé"
- Distinguer adultes et enfants, signaler les contre-indications d'âge`

const equivalencePrompt = `Tu es un expert pharmacien français spécialisé dans les équivalences médicamenteuses.
` + editorialRules + `

## RÈGLES DE PRÉCISION ABSOLUES
1. AUCUNE INVENTION : ne jamais citer un médicament ou un dosage incertain
2. QUALITÉ > QUANTITÉ : mieux vaut 2 équivalents vérifiés que 10 douteux
3. Dosages EXACTS uniquement

## CATÉGORIES
1. Équivalences strictes : même DCI, même dosage
2. Génériques : UN SEUL représentatif
3. Équivalents par indication : dispositifs médicaux, compléments, homéopathie`

var dosageSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"dosages": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"age": {"type": "string"},
					"poids": {"type": "string"},
					"voie": {"type": "string"},
					"dosePrise": {"type": "string"},
					"frequence": {"type": "string"},
					"doseMaxPrise": {"type": "string"},
					"doseMax24h": {"type": "string"},
					"notes": {"type": "string"}
				},
				"required": ["age", "poids", "voie", "dosePrise", "frequence", "doseMaxPrise", "doseMax24h", "notes"]
			}
		}
	},
	"required": ["dosages"],
	"additionalProperties": false
}`)

var equivalenceSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"medicationAnalysis": {
			"type": "object",
			"properties": {
				"originalName": {"type": "string"},
				"dci": {"type": "string"},
				"dosage": {"type": "string"},
				"form": {"type": "string"}
			},
			"required": ["originalName", "dci", "dosage", "form"]
		},
		"generics": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"note": {"type": "string"}
				},
				"required": ["name"]
			}
		},
		"brandEquivalents": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"form": {"type": "string"},
					"laboratory": {"type": "string"},
					"note": {"type": "string"}
				},
				"required": ["name", "form"]
			}
		},
		"indicationEquivalents": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"productType": {"type": "string", "enum": ["Médicament", "Dispositif médical", "Complément alimentaire", "Homéopathie"]},
					"indication": {"type": "string"},
					"activePrinciple": {"type": "string"},
					"note": {"type": "string"}
				},
				"required": ["name", "productType", "indication"]
			}
		},
		"excipientWarnings": {
			"type": "array",
			"items": {"type": "string"}
		},
		"summary": {
			"type": "array",
			"items": {"type": "string"}
		},
		"substitutionAdvice": {"type": "string"},
		"verificationNote": {"type": "string"}
	},
	"required": ["medicationAnalysis", "generics", "brandEquivalents", "indicationEquivalents", "excipientWarnings", "summary", "substitutionAdvice", "verificationNote"]
}`)
