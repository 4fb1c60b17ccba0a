// Package log defines the logging interface for the folder tree.
//
// Given that there're many go logging frameworks out there, we can't make
// the choice. So we require the caller to adapt the logger they choose
// into this logging interface.
//
// On the other hand, we define a more semantic logging interface to
// specify what topic we are about to log, so that callers gain more
// control in processing and filtering logs by topic.
package log
