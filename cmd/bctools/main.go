// Command bctools corrects DNA barcodes against a succinct whitelist index:
// infer a whitelist from raw reads, build the index, correct reads against
// it, and summarize the result.
package main

import "os"

func main() {
	os.Exit(Execute())
}
