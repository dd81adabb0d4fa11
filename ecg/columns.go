package ecg

// Column vocabulary for processed ECG tables. The orchestrator emits
// exactly these names; the analysis package resolves its column roles
// against them.
const (
	ColRaw     = "ECG_Raw"
	ColClean   = "ECG_Clean"
	ColRate    = "ECG_Rate"
	ColQuality = "ECG_Quality"

	ColRPeaks = "ECG_R_Peaks"
	ColPPeaks = "ECG_P_Peaks"
	ColQPeaks = "ECG_Q_Peaks"
	ColSPeaks = "ECG_S_Peaks"
	ColTPeaks = "ECG_T_Peaks"

	ColPOnsets  = "ECG_P_Onsets"
	ColPOffsets = "ECG_P_Offsets"
	ColROnsets  = "ECG_R_Onsets"
	ColROffsets = "ECG_R_Offsets"
	ColTOnsets  = "ECG_T_Onsets"
	ColTOffsets = "ECG_T_Offsets"

	ColPhaseAtrial           = "ECG_Phase_Atrial"
	ColPhaseVentricular      = "ECG_Phase_Ventricular"
	ColAtrialCompletion      = "ECG_Atrial_PhaseCompletion"
	ColVentricularCompletion = "ECG_Ventricular_PhaseCompletion"
)

// InfoSamplingRate is the InfoRecord key under which the sampling
// rate travels when records are serialized.
const InfoSamplingRate = "sampling_rate"
