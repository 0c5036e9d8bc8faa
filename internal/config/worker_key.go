package config

type WorkerKeyStruct struct {
	PersistResultsQueue string
	MailResultsQueue    string
}

var WorkerKey = &WorkerKeyStruct{
	PersistResultsQueue: "persist_results_queue",
	MailResultsQueue:    "mail_results_queue",
}
