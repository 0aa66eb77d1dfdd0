package main

import "github.com/SscSPs/expense_approvals/internal/cli"

func main() {
	cli.Execute()
}
