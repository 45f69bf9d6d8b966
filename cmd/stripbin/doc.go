// Stripbin redacts the username embedded in compiled binaries.
//
// Go, Rust and C toolchains record source paths such as /home/alice/src or
// C:\Users\alice\proj in the artifacts they produce. stripbin replaces every
// occurrence of the username in the files of a build directory with the
// fixed placeholder "user" before the binaries are published.
//
// Usage:
//
//	stripbin strip backup alice                  # bin/backup.* , username from argument
//	username=alice stripbin strip --variant B    # bin/*.exe , username from $username
//	username=alice stripbin strip --variant C backup
//	stripbin strip --dry-run --format json backup alice
//	stripbin config show
//
// Exit codes: 0 success (including when nothing matched), 2 usage or
// configuration error, 3 directory not found, 4 I/O error.
package main
