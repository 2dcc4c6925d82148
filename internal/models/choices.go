// internal/models/choices.go
package models

// Categorical field values. The empty string means "not chosen yet".

type PropertyType string

const (
	PropertyDomestic   PropertyType = "domestic"
	PropertyCommercial PropertyType = "commercial"
	PropertyIndustrial PropertyType = "industrial"
	PropertyOther      PropertyType = "other"
)

type EarthingArrangement string

const (
	EarthingTNCS EarthingArrangement = "tn-c-s"
	EarthingTNS  EarthingArrangement = "tn-s"
	EarthingTT   EarthingArrangement = "tt"
	EarthingIT   EarthingArrangement = "it"
)

type OverallAssessment string

const (
	AssessmentSatisfactory   OverallAssessment = "satisfactory"
	AssessmentUnsatisfactory OverallAssessment = "unsatisfactory"
)

// FaultsFound selects which EICR fault category text areas apply.
type FaultsFound string

const (
	FaultsNone  FaultsFound = "none"
	FaultsC1    FaultsFound = "c1"
	FaultsC2    FaultsFound = "c2"
	FaultsC3    FaultsFound = "c3"
	FaultsFI    FaultsFound = "fi"
	FaultsMixed FaultsFound = "mixed"
)

type NextInspection string

const (
	NextInspection1Year   NextInspection = "1-year"
	NextInspection3Years  NextInspection = "3-years"
	NextInspection5Years  NextInspection = "5-years"
	NextInspection10Years NextInspection = "10-years"
)

type WorkType string

const (
	WorkNewCircuit  WorkType = "new-circuit"
	WorkAddition    WorkType = "addition"
	WorkAlteration  WorkType = "alteration"
	WorkReplacement WorkType = "replacement"
)

type InstallationCondition string

const (
	ConditionGood      InstallationCondition = "good"
	ConditionFair      InstallationCondition = "fair"
	ConditionPoor      InstallationCondition = "poor"
	ConditionDangerous InstallationCondition = "dangerous"
)

type ChargerRating string

const (
	ChargerRating3_6kW ChargerRating = "3.6kw"
	ChargerRating7kW   ChargerRating = "7kw"
	ChargerRating11kW  ChargerRating = "11kw"
	ChargerRating22kW  ChargerRating = "22kw"
)

type ChargerInstallation string

const (
	ChargerTethered   ChargerInstallation = "tethered"
	ChargerUntethered ChargerInstallation = "untethered"
)

type SupplyType string

const (
	SupplySinglePhase SupplyType = "single-phase"
	SupplyThreePhase  SupplyType = "three-phase"
)

type ConsumerUnitType string

const (
	UnitSplitLoad      ConsumerUnitType = "split-load"
	UnitRCBOBoard      ConsumerUnitType = "rcbo-board"
	UnitDualRCD        ConsumerUnitType = "dual-rcd"
	UnitMainSwitchOnly ConsumerUnitType = "main-switch-only"
)

type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

type RCDType string

const (
	RCD30mA  RCDType = "30ma"
	RCD100mA RCDType = "100ma"
	RCD300mA RCDType = "300ma"
	RCDSType RCDType = "s-type"
)

type RCDTestType string

const (
	RCDTestRoutine      RCDTestType = "routine"
	RCDTestInitial      RCDTestType = "initial"
	RCDTestPeriodic     RCDTestType = "periodic"
	RCDTestFaultFinding RCDTestType = "fault-finding"
)

type RCDCondition string

const (
	RCDSatisfactory        RCDCondition = "satisfactory"
	RCDUnsatisfactory      RCDCondition = "unsatisfactory"
	RCDRequiresReplacement RCDCondition = "requires-replacement"
)
