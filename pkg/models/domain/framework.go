package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDomain    = errors.New("unknown domain")
	ErrUnknownDimension = errors.New("unknown dimension")
)

// Domain is one of the eight IT practice areas being assessed.
type Domain string

const (
	DomainCybersecurity         Domain = "cybersecurity"
	DomainRiskCompliance        Domain = "risk-compliance"
	DomainIncidentProblem       Domain = "incident-problem"
	DomainContinuityResilience  Domain = "continuity-resilience"
	DomainKnowledgeData         Domain = "knowledge-data"
	DomainChangeDeployment      Domain = "change-deployment"
	DomainInfrastructureTooling Domain = "infrastructure-tooling"
	DomainServiceManagement     Domain = "service-management"
)

// Dimension is a maturity axis applied uniformly to every domain.
type Dimension string

const (
	DimensionPeople      Dimension = "people"
	DimensionProcess     Dimension = "process"
	DimensionTechnology  Dimension = "technology"
	DimensionGovernance  Dimension = "governance"
	DimensionMeasurement Dimension = "measurement"
)

type DomainDef struct {
	ID             Domain
	Name           string
	Description    string
	Recommendation string
}

type DimensionDef struct {
	ID          Dimension
	Name        string
	Description string
}

// Registry order matters: it is the "first seen" order used by rankings.
var domainRegistry = []DomainDef{
	{
		ID:             DomainCybersecurity,
		Name:           "Cybersecurity",
		Description:    "Protection of client confidential information, identity and endpoint security.",
		Recommendation: "Adopt a recognised security framework, enforce MFA firm-wide and run regular phishing simulations.",
	},
	{
		ID:             DomainRiskCompliance,
		Name:           "Risk & Compliance",
		Description:    "Regulatory obligations, information governance and IT risk management.",
		Recommendation: "Maintain a living IT risk register mapped to regulatory and client outside-counsel requirements.",
	},
	{
		ID:             DomainIncidentProblem,
		Name:           "Incident & Problem Management",
		Description:    "Detection, triage and root-cause analysis of service disruptions.",
		Recommendation: "Define severity levels with response targets and hold post-incident reviews for every major incident.",
	},
	{
		ID:             DomainContinuityResilience,
		Name:           "Continuity & Resilience",
		Description:    "Business continuity, disaster recovery and backup assurance.",
		Recommendation: "Test restores and failover on a schedule and document recovery objectives for each practice system.",
	},
	{
		ID:             DomainKnowledgeData,
		Name:           "Knowledge & Data",
		Description:    "Document management, knowledge reuse and data quality.",
		Recommendation: "Standardise matter-centric document management and assign data owners for key repositories.",
	},
	{
		ID:             DomainChangeDeployment,
		Name:           "Change & Deployment",
		Description:    "Controlled release of changes to applications and infrastructure.",
		Recommendation: "Introduce a lightweight change advisory process with rollback plans and release calendars.",
	},
	{
		ID:             DomainInfrastructureTooling,
		Name:           "Infrastructure & Tooling",
		Description:    "Platforms, cloud services, monitoring and automation.",
		Recommendation: "Consolidate monitoring, automate routine provisioning and track lifecycle of end-of-support assets.",
	},
	{
		ID:             DomainServiceManagement,
		Name:           "Service Management",
		Description:    "Service desk, service catalogue and lawyer-facing support experience.",
		Recommendation: "Publish a service catalogue with agreed service levels and measure fee-earner satisfaction.",
	},
}

var dimensionRegistry = []DimensionDef{
	{ID: DimensionPeople, Name: "People", Description: "Skills, roles and accountability."},
	{ID: DimensionProcess, Name: "Process", Description: "Documented, repeatable ways of working."},
	{ID: DimensionTechnology, Name: "Technology", Description: "Tools and platforms supporting the practice."},
	{ID: DimensionGovernance, Name: "Governance", Description: "Ownership, policy and oversight."},
	{ID: DimensionMeasurement, Name: "Measurement", Description: "Metrics, reporting and continuous improvement."},
}

var (
	domainIndex    = make(map[Domain]DomainDef, len(domainRegistry))
	dimensionIndex = make(map[Dimension]DimensionDef, len(dimensionRegistry))
)

func init() {
	for _, d := range domainRegistry {
		domainIndex[d.ID] = d
	}
	for _, d := range dimensionRegistry {
		dimensionIndex[d.ID] = d
	}
}

// Domains returns every domain in registry order.
func Domains() []Domain {
	out := make([]Domain, len(domainRegistry))
	for i, d := range domainRegistry {
		out[i] = d.ID
	}
	return out
}

// Dimensions returns every dimension in registry order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensionRegistry))
	for i, d := range dimensionRegistry {
		out[i] = d.ID
	}
	return out
}

func DomainDefs() []DomainDef {
	return append([]DomainDef(nil), domainRegistry...)
}

func DimensionDefs() []DimensionDef {
	return append([]DimensionDef(nil), dimensionRegistry...)
}

func (d Domain) Valid() bool {
	_, ok := domainIndex[d]
	return ok
}

func (d Dimension) Valid() bool {
	_, ok := dimensionIndex[d]
	return ok
}

func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return d, nil
}

func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
	return d, nil
}

// DomainInfo returns display metadata; ok is false for unknown domains.
func DomainInfo(d Domain) (DomainDef, bool) {
	def, ok := domainIndex[d]
	return def, ok
}

func DimensionInfo(d Dimension) (DimensionDef, bool) {
	def, ok := dimensionIndex[d]
	return def, ok
}
