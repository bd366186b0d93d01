/*
Package scoreboard implements Reputation Scoreboard contract.

The contract keeps a single board: an authority account, a voting cooldown,
the asset voters must hold and the reputation threshold of the
top_contributor role. Any holder of the required asset can upvote or
downvote any account once per cooldown period. The authority can reset
scores, and anyone can unlock the role for an account that reached the
threshold.

The board can be created right on deployment by passing
[authority, cooldown, requiredAsset, threshold] as deployment data or later
with Initialize call.

# Contract notifications

BoardInitialized notification. This notification is produced when the board
is created.

	BoardInitialized
	  - name: authority
	    type: Hash160
	  - name: cooldown
	    type: Integer
	  - name: requiredAsset
	    type: Hash160
	  - name: threshold
	    type: Integer

UserVoted notification. This notification is produced by Upvote and Downvote
calls. Direction is either "upvote" or "downvote", newScore is the reputation
of the target after the vote.

	UserVoted
	  - name: voter
	    type: Hash160
	  - name: target
	    type: Hash160
	  - name: direction
	    type: String
	  - name: newScore
	    type: Integer

ScoreReset notification. This notification is produced when the authority
resets the reputation of the target.

	ScoreReset
	  - name: authority
	    type: Hash160
	  - name: target
	    type: Hash160

RoleUnlocked notification. This notification is produced when the subject is
granted the top_contributor role.

	RoleUnlocked
	  - name: subject
	    type: Hash160
	  - name: role
	    type: String
	  - name: reputation
	    type: Integer
*/
package scoreboard

/*
Contract storage model.

Current conventions:
 <subject>, <voter>, <target>: 20-byte account script hashes
 <int>: 8-byte little-endian two's complement integer

# Summary
Key-value storage format:
 - 'b' -> <authority> <int cooldown> <requiredAsset> <int threshold>
   board configuration, 56 bytes
 - 'e<subject>' -> <subject> <int reputation> <byte topContributor>
   reputation entry, 29 bytes
 - 'v<voter><target>' -> <voter> <target> <int lastVote>
   time of the last vote in seconds, 48 bytes

# Entries
Reputation entries are created by the first vote for the subject (or by role
unlock when the threshold is not positive) and are never deleted.
*/
