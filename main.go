// Command spendlog records categorized expenses and tracks them against a
// monthly budget.
package main

func main() {
	Execute()
}
