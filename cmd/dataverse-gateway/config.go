package main

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	configPath
	opaPath

	tenantID
	clientID
	clientSecret
	tokenURL

	debugClient
)
