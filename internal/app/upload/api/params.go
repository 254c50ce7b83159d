package api

const (
	//PrmEmail parameter
	PrmEmail = "email"
	//PrmInputFile parameter, the source text file
	PrmInputFile = "inputFile"
	//PrmOutputFile parameter, the optional pre-translated text file
	PrmOutputFile = "outputFile"
	//PrmInputLanguage parameter
	PrmInputLanguage = "inputLanguage"
	//PrmOutputLanguage parameter
	PrmOutputLanguage = "outputLanguage"
	//PrmTranslateType parameter, selects the translation backend
	PrmTranslateType = "translateType"
	//PrmProjectID parameter
	PrmProjectID = "projectID"
)
