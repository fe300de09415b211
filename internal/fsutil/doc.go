// Package fsutil holds the filesystem helpers shared by discovery, the
// database and the CLI. The schemas command creates, lists, prunes and
// chmods its output through them.
//
// The pipeline itself never depends on this package for correctness; it
// only uses ListFiles so that schema-module directories are enumerated the
// same way whether they come from disk or from the embedded model sources.
//
// # Usage
//
//	dir, err := fsutil.NormalizePath("~/woods/json_configs")
//	if err != nil {
//	    return err
//	}
//	if err := fsutil.EnsureDir(dir, fsutil.DirPerm); err != nil {
//	    return err
//	}
//	names, err := fsutil.ListFiles(os.DirFS(dir), ".", ".json")
package fsutil
