package spydriver

//go:generate go run github.com/AntonStoeckl/sqlspy-go/cmd/sqlspygen --config sqlspygen.yaml
