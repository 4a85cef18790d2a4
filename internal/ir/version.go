package ir

// JournalVersion is the version of the op and digest encoding. Stored with
// every genome so a replay can refuse journals it does not understand.
const JournalVersion = "1"
