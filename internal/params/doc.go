// Package params collects raw query-catalog arguments from the command line
// and from parameter files.
//
// Arguments stay strings here; the catalog entry that receives them parses
// them per declared parameter kind.
//
// # Sources
//
//   - --param key=value flags, parsed by ParseKeyValuePairs
//   - --params-file, a .env-format file parsed by ParseEnvFile (godotenv)
//   - the params block of ecomadmin.yaml
//
// Merge combines them; later sources win, so command-line flags override
// files and files override project defaults.
//
// # Example Usage
//
//	fileParams, err := params.LoadEnvFile("report.env")
//	if err != nil {
//	    return err
//	}
//	cliParams, err := params.ParseKeyValuePairs([]string{"vendor_id=3"})
//	if err != nil {
//	    return err
//	}
//	args := params.Merge(project.Params, fileParams, cliParams)
package params
