package playbooks

import "github.com/parley-labs/parley/engine"

// Templates returns the built-in playbooks available for seeding. The
// returned slice is freshly built per call so callers can mutate their
// copy safely. IDs and timestamps are assigned at insert time.
func Templates() []Playbook {
	return []Playbook{
		standardContract(),
		employmentAgreement(),
		vendorAgreement(),
		saasAgreement(),
	}
}

func standardContract() Playbook {
	return Playbook{
		Name:        "Standard Contract Playbook",
		Version:     1,
		Description: strPtr("Comprehensive compliance rules for standard business contracts"),
		IsDefault:   true,
		Rules: []engine.Rule{
			{
				ID:     "indemnity_clause",
				Name:   "Indemnity Clause",
				Weight: 0.9,
				Criteria: engine.MatchCriteria{
					ClauseType:    "indemnity",
					Keywords:      []string{"indemnify", "hold harmless", "indemnification", "shall defend"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Risk Allocation",
				Recommendations: []string{
					"Add mutual indemnity clause to protect both parties",
					"Include specific indemnification for third-party claims",
					"Consider carve-outs for gross negligence and willful misconduct",
				},
				SuggestedLanguage: "Each party shall indemnify, defend, and hold harmless the other party from and against any third-party claims arising from its breach of this Agreement, excluding claims arising from the indemnified party's gross negligence or willful misconduct.",
				Impact:            "high",
				Effort:            "medium",
			},
			{
				ID:     "liability_cap",
				Name:   "Liability Limitation",
				Weight: 0.8,
				Criteria: engine.MatchCriteria{
					ClauseType:    "liability",
					Keywords:      []string{"limitation of liability", "maximum liability", "aggregate liability"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Risk Allocation",
				Recommendations: []string{
					"Include reasonable liability caps to limit exposure",
					"Consider mutual liability limitations",
					"Exclude certain damages from liability caps (e.g., IP infringement)",
				},
				SuggestedLanguage: "Neither party's aggregate liability under this Agreement shall exceed the fees paid or payable in the twelve months preceding the claim, except for breaches of confidentiality or IP infringement.",
				Impact:            "high",
				Effort:            "medium",
			},
			{
				ID:     "termination_clause",
				Name:   "Termination Rights",
				Weight: 0.7,
				Criteria: engine.MatchCriteria{
					ClauseType:    "termination",
					Keywords:      []string{"terminate", "termination", "notice"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Term and Termination",
				Recommendations: []string{
					"Include termination for cause provisions",
					"Add termination for convenience with appropriate notice",
					"Specify post-termination obligations and data handling",
				},
				Impact: "medium",
				Effort: "low",
			},
			{
				ID:     "confidentiality_clause",
				Name:   "Confidentiality Provisions",
				Weight: 0.6,
				Criteria: engine.MatchCriteria{
					ClauseType:    "confidentiality",
					Keywords:      []string{"confidential", "non-disclosure", "proprietary information", "trade secrets"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Information Protection",
				Recommendations: []string{
					"Include mutual confidentiality obligations",
					"Define what constitutes confidential information",
					"Specify exceptions to confidentiality obligations",
				},
				Impact: "medium",
				Effort: "low",
			},
			{
				ID:     "governing_law",
				Name:   "Governing Law",
				Weight: 0.5,
				Criteria: engine.MatchCriteria{
					ClauseType:    "governing_law",
					Keywords:      []string{"governing law", "governed by", "jurisdiction", "applicable law"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Legal Framework",
				Recommendations: []string{
					"Specify clear governing law and jurisdiction",
					"Consider neutral jurisdiction for international contracts",
					"Include dispute resolution mechanisms",
				},
				Impact: "medium",
				Effort: "low",
			},
			{
				ID:     "force_majeure",
				Name:   "Force Majeure",
				Weight: 0.3,
				Criteria: engine.MatchCriteria{
					ClauseType:    "force_majeure",
					Keywords:      []string{"force majeure", "act of god", "beyond the reasonable control"},
					MinConfidence: 0.5,
				},
				Required: false,
				Category: "Legal Framework",
				Recommendations: []string{
					"Consider adding force majeure clause for unforeseeable events",
					"Include pandemic and cyber security incidents",
					"Specify notice requirements and mitigation obligations",
				},
				Impact: "low",
				Effort: "low",
			},
			{
				ID:     "intellectual_property",
				Name:   "Intellectual Property Rights",
				Weight: 0.8,
				Criteria: engine.MatchCriteria{
					ClauseType:    "intellectual_property",
					Keywords:      []string{"intellectual property", "copyright", "patent", "proprietary rights", "work for hire"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Intellectual Property",
				Recommendations: []string{
					"Clearly define IP ownership and licensing rights",
					"Include IP indemnification provisions",
					"Address pre-existing IP and derivative works",
				},
				Impact: "high",
				Effort: "medium",
			},
			{
				ID:     "payment_terms",
				Name:   "Payment Terms",
				Weight: 0.6,
				Criteria: engine.MatchCriteria{
					ClauseType:    "payment",
					Keywords:      []string{"payment", "invoice", "net", "late fees"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Commercial Terms",
				Recommendations: []string{
					"Include clear payment terms and due dates",
					"Add late payment penalties and interest",
					"Specify acceptable payment methods",
				},
				Impact: "medium",
				Effort: "low",
			},
		},
	}
}

func employmentAgreement() Playbook {
	return Playbook{
		Name:        "Employment Agreement Playbook",
		Version:     1,
		Description: strPtr("Compliance rules for employment agreements"),
		Rules: []engine.Rule{
			{
				ID:     "at_will_employment",
				Name:   "At-Will Employment",
				Weight: 0.7,
				Criteria: engine.MatchCriteria{
					ClauseType:    "employment_terms",
					Keywords:      []string{"at-will", "at will", "without cause"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Employment Terms",
				Recommendations: []string{
					"Include clear at-will employment language",
					"Specify notice requirements for termination",
					"Consider probationary period provisions",
				},
				Impact: "medium",
				Effort: "low",
			},
			{
				ID:     "non_compete",
				Name:   "Non-Compete Agreement",
				Weight: 0.8,
				Criteria: engine.MatchCriteria{
					ClauseType:    "restrictive_covenant",
					Keywords:      []string{"non-compete", "not compete", "competitive business"},
					MinConfidence: 0.5,
				},
				Required: false,
				Category: "Restrictive Covenants",
				Recommendations: []string{
					"Ensure non-compete restrictions are reasonable in scope and duration",
					"Consider state law limitations on non-compete agreements",
					"Include consideration for non-compete restrictions",
				},
				Impact: "high",
				Effort: "medium",
			},
			{
				ID:     "confidentiality_employment",
				Name:   "Employee Confidentiality",
				Weight: 0.9,
				Criteria: engine.MatchCriteria{
					ClauseType:    "confidentiality",
					Keywords:      []string{"confidential", "proprietary information", "trade secrets", "non-disclosure"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Information Protection",
				Recommendations: []string{
					"Include comprehensive confidentiality provisions",
					"Define scope of confidential information",
					"Specify post-employment confidentiality obligations",
				},
				Impact: "high",
				Effort: "low",
			},
		},
	}
}

func vendorAgreement() Playbook {
	return Playbook{
		Name:        "Vendor Agreement Playbook",
		Version:     1,
		Description: strPtr("Compliance rules for vendor and supplier agreements"),
		Rules: []engine.Rule{
			{
				ID:     "service_level_agreement",
				Name:   "Service Level Agreement",
				Weight: 0.8,
				Criteria: engine.MatchCriteria{
					ClauseType:    "performance",
					Keywords:      []string{"service level", "sla", "performance standards", "uptime"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Performance",
				Recommendations: []string{
					"Include specific service level requirements",
					"Add penalties for SLA breaches",
					"Define measurement and reporting procedures",
				},
				Impact: "high",
				Effort: "medium",
			},
			{
				ID:     "data_security",
				Name:   "Data Security Requirements",
				Weight: 0.9,
				Criteria: engine.MatchCriteria{
					ClauseType:    "data_security",
					Keywords:      []string{"data security", "data protection", "encryption", "privacy"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Information Protection",
				Recommendations: []string{
					"Include comprehensive data security requirements",
					"Specify compliance with applicable privacy laws",
					"Add data breach notification procedures",
				},
				Impact: "high",
				Effort: "high",
			},
			{
				ID:     "insurance_requirements",
				Name:   "Insurance Requirements",
				Weight: 0.7,
				Criteria: engine.MatchCriteria{
					ClauseType:    "insurance",
					Keywords:      []string{"insurance", "coverage", "liability insurance", "errors and omissions"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Risk Allocation",
				Recommendations: []string{
					"Require adequate insurance coverage levels",
					"Include additional insured provisions",
					"Specify insurance certificate requirements",
				},
				Impact: "medium",
				Effort: "low",
			},
		},
	}
}

func saasAgreement() Playbook {
	return Playbook{
		Name:        "SaaS Agreement Playbook",
		Version:     1,
		Description: strPtr("Compliance rules for software-as-a-service agreements"),
		Rules: []engine.Rule{
			{
				ID:     "data_ownership",
				Name:   "Data Ownership",
				Weight: 0.9,
				Criteria: engine.MatchCriteria{
					ClauseType:    "data_rights",
					Keywords:      []string{"data ownership", "customer data", "data portability", "data export"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Information Protection",
				Recommendations: []string{
					"Clearly establish customer data ownership",
					"Include data portability and export rights",
					"Specify data deletion procedures upon termination",
				},
				Impact: "high",
				Effort: "medium",
			},
			{
				ID:     "uptime_guarantee",
				Name:   "Uptime Guarantee",
				Weight: 0.8,
				Criteria: engine.MatchCriteria{
					ClauseType:    "availability",
					Keywords:      []string{"uptime", "availability", "service level", "downtime"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Performance",
				Recommendations: []string{
					"Include specific uptime guarantees",
					"Add service credits for downtime",
					"Define planned vs. unplanned maintenance",
				},
				Impact: "high",
				Effort: "medium",
			},
			{
				ID:     "security_compliance",
				Name:   "Security Compliance",
				Weight: 0.9,
				Criteria: engine.MatchCriteria{
					ClauseType:    "security",
					Keywords:      []string{"soc 2", "iso 27001", "security certification", "penetration test"},
					MinConfidence: 0.5,
				},
				Required: true,
				Category: "Information Protection",
				Recommendations: []string{
					"Require relevant security certifications",
					"Include regular security assessments",
					"Specify incident response procedures",
				},
				Impact: "high",
				Effort: "high",
			},
		},
	}
}

func strPtr(s string) *string {
	return &s
}
