// Game-start configuration and the derived Baseline value. Every reference
// constant the sub-models compare against lives here, in one place: the
// demand, avoidance and supply-side formulas all read from the Baseline
// computed from the same literals that build the start state, so a tuning
// change cannot leave a stale copy behind in one formula.
package state

// TaxBase identifies a revenue stream for elasticity and avoidance modelling.
type TaxBase string

const (
	BaseIncome      TaxBase = "income"
	BasePayroll     TaxBase = "payroll"
	BaseConsumption TaxBase = "consumption"
	BaseCorporate   TaxBase = "corporate"
	BaseOther       TaxBase = "other"
)

// Department names.
const (
	DeptHealth    = "health"
	DeptEducation = "education"
	DeptTransport = "transport"
	DeptWelfare   = "welfare"
	DeptDefence   = "defence"
	DeptJustice   = "justice"
	DeptHousing   = "housing"
	DeptOther     = "other"
)

// startDepartments is the game-start spending plan, £bn/yr.
var startDepartments = map[string]DeptBudget{
	DeptHealth:    {Current: 160, Capital: 12},
	DeptEducation: {Current: 85, Capital: 8},
	DeptTransport: {Current: 20, Capital: 25},
	DeptWelfare:   {Current: 300, Capital: 0},
	DeptDefence:   {Current: 45, Capital: 10},
	DeptJustice:   {Current: 35, Capital: 4},
	DeptHousing:   {Current: 25, Capital: 20},
	DeptOther:     {Current: 330, Capital: 21},
}

// startProgrammes is the game-start budget, £bn/yr, for each granular
// spending programme tracked by the service-quality model.
var startProgrammes = map[string]float64{
	"mental-health":      16,
	"gp-access":          14,
	"social-care":        28,
	"send-support":       10,
	"school-maintenance": 6,
	"prison-safety":      5,
	"courts-backlog":     4,
	"rail-reliability":   18,
	"road-maintenance":   9,
	"social-housing":     7,
	"policing":           18,
	"skills-training":    5,
}

// startTaxParams is the game-start value of granular tax parameters.
var startTaxParams = map[string]float64{
	"personal-allowance": 12570, // £/yr
	"fuel-duty":          52.95, // p/litre
	"capital-gains-rate": 20,    // %
	"bank-levy":          0.1,   // % of liabilities
}

// startServiceProgrammes is the game-start quality index per programme.
var startServiceProgrammes = map[string]float64{
	"mental-health":      48,
	"gp-access":          58,
	"social-care":        52,
	"send-support":       50,
	"school-maintenance": 60,
	"prison-safety":      45,
	"courts-backlog":     50,
	"rail-reliability":   57,
	"road-maintenance":   55,
	"social-housing":     47,
	"policing":           62,
	"skills-training":    56,
}

// startRevenue is game-start annual revenue per tax base, £bn/yr.
var startRevenue = map[TaxBase]float64{
	BaseIncome:      280,
	BasePayroll:     180,
	BaseConsumption: 170,
	BaseCorporate:   110,
	BaseOther:       340,
}

// New creates the canonical game-start State for a session.
func New(diff Difficulty, ruleID string) State {
	departments := make(map[string]DeptBudget, len(startDepartments))
	for k, v := range startDepartments {
		departments[k] = v
	}
	programmes := make(map[string]Lever, len(startProgrammes)+len(startTaxParams))
	for k, v := range startProgrammes {
		programmes[k] = Lever{Value: v, Baseline: v}
	}
	for k, v := range startTaxParams {
		programmes[k] = Lever{Value: v, Baseline: v}
	}
	svcProgs := make(map[string]float64, len(startServiceProgrammes))
	for k, v := range startServiceProgrammes {
		svcProgs[k] = v
	}

	var revenue float64
	for _, r := range startRevenue {
		revenue += r
	}
	fiscal := Fiscal{
		BasicRate:       20,
		HigherRate:      40,
		AdditionalRate:  45,
		EmployeeNI:      8,
		EmployerNI:      13.8,
		VAT:             20,
		CorporationTax:  25,
		BenefitTaperate: 55,
		VATPrev:         20,
		Departments:     departments,
		Programmes:      programmes,
		TotalRevenue:    revenue,
		DebtInterest:    100,
		BlendedRate:     3.2,
		DebtNominal:     2565,
		FYStartTurn:     0,
		YearCounter:     1,
	}
	fiscal.TotalSpending = fiscal.DepartmentalTotal() + fiscal.DebtInterest
	fiscal.Deficit = fiscal.TotalSpending - fiscal.TotalRevenue
	gdp := 2700.0
	fiscal.DeficitPctGDP = fiscal.Deficit / gdp * 100
	fiscal.DebtPctGDP = fiscal.DebtNominal / gdp * 100
	fiscal.YearStartSpending = make(map[string]DeptBudget, len(departments))
	for k, v := range departments {
		fiscal.YearStartSpending[k] = v
	}

	s := State{
		Turn:       0,
		Difficulty: diff,
		Advisers:   NoAdvisers(),
		Economy: Economy{
			GDPNominal:         gdp,
			MonthlyGrowth:      0.10,
			AnnualGrowth:       1.2,
			NominalGrowth:      0.27,
			ProductivityGrowth: 0.8,
			ProductivityIndex:  100,
			Inflation:          2.0,
			PriceLevel:         100,
			AnchoringHealth:    75,
			Unemployment:       4.3,
			WageGrowth:         3.0,
		},
		Fiscal: fiscal,
		Market: Market{
			PolicyRate:    4.0,
			Yield2:        4.0,
			Yield5:        4.2,
			Yield10:       4.4,
			MortgageRate:  4.9,
			CurrencyIndex: 100,
		},
		Services: Services{
			Health:         62,
			Education:      68,
			Infrastructure: 55,
			Programmes:     svcProgs,
		},
		Politics: Politics{
			Approval:       40,
			LeaderApproval: 42,
			Backbench:      65,
			PMTrust:        60,
			Credibility:    70,
			StrikeRisk:     20,
			FiscalRule:     ruleID,
			Rating:         "AA",
			RatingOutlook:  "stable",
			Compliance: Compliance{
				Compliant:         true,
				CurrentBudgetMet:  true,
				OverallBalanceMet: false,
				DeficitCeilingMet: true,
				DebtTargetMet:     false,
				DebtFallingMet:    true,
				InvestmentRuleMet: true,
			},
		},
	}
	return s
}

// Baseline carries every game-start reference value plus the structural
// model constants (targets and natural rates that are not themselves part
// of the mutable State).
type Baseline struct {
	// Structural constants.
	InflationTarget   float64 // %
	NAIRU             float64 // %
	NeutralRate       float64 // % nominal
	LabourForceGrowth float64 // annual %
	PotentialGrowth   float64 // medium-term annual real growth target, %
	AvgCouponRate     float64 // assumed historical average coupon on the debt stock, %
	ReferenceRate     float64 // foreign policy rate for the currency differential, %

	// Game-start references, copied from the canonical start state.
	GDPNominal         float64
	Unemployment       float64
	Inflation          float64
	WageGrowth         float64
	ProductivityGrowth float64
	PolicyRate         float64
	Yield10            float64
	CurrencyIndex      float64

	BasicRate      float64
	HigherRate     float64
	AdditionalRate float64
	EmployeeNI     float64
	EmployerNI     float64
	VAT            float64
	CorporationTax float64

	Revenue      map[TaxBase]float64
	TotalRevenue float64

	Departments       map[string]DeptBudget
	DepartmentalTotal float64
	CurrentSpending   float64
	CapitalSpending   float64
	DebtInterest      float64
	TotalSpending     float64
	Deficit           float64
	DebtNominal       float64
	DebtPctGDP        float64

	Health         float64
	Education      float64
	Infrastructure float64
	Programmes     map[string]float64 // budget baselines, £bn/yr
	ServiceIndices map[string]float64 // granular quality baselines

	Approval    float64
	Backbench   float64
	PMTrust     float64
	Credibility float64
}

// NewBaseline computes the Baseline from the same literals New uses.
func NewBaseline() Baseline {
	s := New(DifficultyStandard, "golden-rule")

	rev := make(map[TaxBase]float64, len(startRevenue))
	for k, v := range startRevenue {
		rev[k] = v
	}
	progs := make(map[string]float64, len(startProgrammes))
	for k, v := range startProgrammes {
		progs[k] = v
	}
	svc := make(map[string]float64, len(startServiceProgrammes))
	for k, v := range startServiceProgrammes {
		svc[k] = v
	}

	return Baseline{
		InflationTarget:   2.0,
		NAIRU:             4.25,
		NeutralRate:       3.0,
		LabourForceGrowth: 0.4,
		PotentialGrowth:   1.5,
		AvgCouponRate:     s.Fiscal.BlendedRate,
		ReferenceRate:     3.5,

		GDPNominal:         s.Economy.GDPNominal,
		Unemployment:       s.Economy.Unemployment,
		Inflation:          s.Economy.Inflation,
		WageGrowth:         s.Economy.WageGrowth,
		ProductivityGrowth: s.Economy.ProductivityGrowth,
		PolicyRate:         s.Market.PolicyRate,
		Yield10:            s.Market.Yield10,
		CurrencyIndex:      s.Market.CurrencyIndex,

		BasicRate:      s.Fiscal.BasicRate,
		HigherRate:     s.Fiscal.HigherRate,
		AdditionalRate: s.Fiscal.AdditionalRate,
		EmployeeNI:     s.Fiscal.EmployeeNI,
		EmployerNI:     s.Fiscal.EmployerNI,
		VAT:            s.Fiscal.VAT,
		CorporationTax: s.Fiscal.CorporationTax,

		Revenue:      rev,
		TotalRevenue: s.Fiscal.TotalRevenue,

		Departments:       s.Fiscal.Departments,
		DepartmentalTotal: s.Fiscal.DepartmentalTotal(),
		CurrentSpending:   s.Fiscal.CurrentTotal(),
		CapitalSpending:   s.Fiscal.CapitalTotal(),
		DebtInterest:      s.Fiscal.DebtInterest,
		TotalSpending:     s.Fiscal.TotalSpending,
		Deficit:           s.Fiscal.Deficit,
		DebtNominal:       s.Fiscal.DebtNominal,
		DebtPctGDP:        s.Fiscal.DebtPctGDP,

		Health:         s.Services.Health,
		Education:      s.Services.Education,
		Infrastructure: s.Services.Infrastructure,
		Programmes:     progs,
		ServiceIndices: svc,

		Approval:    s.Politics.Approval,
		Backbench:   s.Politics.Backbench,
		PMTrust:     s.Politics.PMTrust,
		Credibility: s.Politics.Credibility,
	}
}
