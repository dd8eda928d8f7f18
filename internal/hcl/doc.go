// Package hcl loads planner configuration written in HCL.
//
// Two top-level block types are understood:
//
//	operation "save_document" {
//	  output      = "file_path"
//	  provides    = ["attachment", "file_path"]
//	  requires    = ["content"]
//	  description = "Generate a document file"
//	}
//
//	call "send_email" {
//	  arguments  = { attachment = "/path/to/", content = "see attached" }
//	  depends_on = ["save_document"]
//	}
//
// Operation blocks become catalog entries; call blocks become proposed calls
// in file and block order. Other blocks are ignored.
package hcl
