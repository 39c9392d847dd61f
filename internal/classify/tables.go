// ABOUTME: Threshold tables for every metric kind.
// ABOUTME: Bands are [lower, upper) unless a band marks its upper bound inclusive.
package classify

import (
	"math"

	"github.com/harperreed/bodylog/internal/models"
)

type band struct {
	upper          float64
	upperInclusive bool
	label          string
	name           string
	level          Level
	message        string
}

// table is an ordered list of contiguous bands covering [min, max].
// The last band's upper bound is always +Inf; max caps the domain separately.
type table struct {
	min   float64
	max   float64
	bands []band
}

func (t table) lookup(kind Kind, v float64) Result {
	if v < t.min || v > t.max {
		return invalid(kind)
	}
	for i, b := range t.bands {
		if v < b.upper || (b.upperInclusive && v == b.upper) {
			return Result{
				Kind:    kind,
				Label:   b.label,
				Name:    b.name,
				Level:   b.level,
				Message: b.message,
				Rank:    i,
			}
		}
	}
	return invalid(kind)
}

var inf = math.Inf(1)

var bmiTable = table{
	min: math.Inf(-1),
	max: inf,
	bands: []band{
		{upper: 18.5, label: "Magreza", name: "Underweight", level: LevelWarning, message: "Consulte um especialista"},
		{upper: 25.0, label: "Peso normal", name: "Normal", level: LevelSuccess, message: "Continue assim!"},
		{upper: 30.0, label: "Sobrepeso", name: "Overweight", level: LevelWarning, message: "Mantenha hábitos saudáveis"},
		{upper: 35.0, label: "Obesidade Grau I", name: "Obesity class I", level: LevelError, message: "Acompanhamento recomendado"},
		{upper: 40.0, label: "Obesidade Grau II", name: "Obesity class II", level: LevelError, message: "Procure ajuda especializada"},
		{upper: inf, label: "Obesidade Grau III", name: "Obesity class III", level: LevelError, message: "Intervenção necessária"},
	},
}

func whrTable(low, high float64) table {
	return table{
		min: 0,
		max: inf,
		bands: []band{
			{upper: low, upperInclusive: true, label: "Baixo risco", name: "Low risk", level: LevelSuccess, message: "Distribuição de gordura saudável"},
			{upper: high, label: "Risco moderado", name: "Moderate risk", level: LevelWarning, message: "Atenção à gordura abdominal"},
			{upper: inf, label: "Alto risco", name: "High risk", level: LevelError, message: "Risco cardiovascular elevado"},
		},
	}
}

var whrTables = map[models.Sex]table{
	models.SexMale:   whrTable(0.90, 1.00),
	models.SexFemale: whrTable(0.85, 0.95),
}

var visceralTable = table{
	min: 0,
	max: inf,
	bands: []band{
		{upper: 9, label: "Normal", name: "Normal", level: LevelSuccess, message: "Nível saudável"},
		{upper: 14, label: "Alto", name: "High", level: LevelWarning, message: "Reduza a gordura visceral"},
		{upper: inf, label: "Muito Alto", name: "Very high", level: LevelError, message: "Procure acompanhamento médico"},
	},
}

func bodyFatTable(essential, athlete, fitness, acceptable, obese float64) table {
	return table{
		min: essential,
		max: 100,
		bands: []band{
			{upper: athlete, label: "Essencial", name: "Essential", level: LevelWarning, message: "Gordura no limite essencial"},
			{upper: fitness, label: "Atleta", name: "Athlete", level: LevelSuccess, message: "Excelente composição corporal"},
			{upper: acceptable, label: "Fitness", name: "Fitness", level: LevelSuccess, message: "Boa composição corporal"},
			{upper: obese, label: "Aceitável", name: "Acceptable", level: LevelWarning, message: "Mantenha hábitos saudáveis"},
			{upper: inf, label: "Obesidade", name: "Obese", level: LevelError, message: "Acompanhamento recomendado"},
		},
	}
}

var bodyFatTables = map[models.Sex]table{
	models.SexMale:   bodyFatTable(2, 6, 14, 18, 25),
	models.SexFemale: bodyFatTable(10, 14, 21, 25, 32),
}

func leanMassTable(low, high float64) table {
	return table{
		min: 0,
		max: 100,
		bands: []band{
			{upper: low, label: "Baixa", name: "Low", level: LevelWarning, message: "Priorize treino de força"},
			{upper: high, label: "Adequada", name: "Adequate", level: LevelSuccess, message: "Massa magra adequada"},
			{upper: inf, label: "Alta", name: "High", level: LevelSuccess, message: "Ótima massa magra"},
		},
	}
}

var leanMassTables = map[models.Sex]table{
	models.SexMale:   leanMassTable(75, 85),
	models.SexFemale: leanMassTable(65, 78),
}
