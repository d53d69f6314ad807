package annotate

import _ "embed"

//go:embed python/spacy_worker.py
var workerScript string

//go:embed python/requirements.txt
var requirementsTxt string
