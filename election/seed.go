// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "github.com/danielhkuo/house-vote/models"

const (
	emojiStudentF = "\U0001F469\u200D\U0001F393"
	emojiStudentM = "\U0001F468\u200D\U0001F393"
)

// DefaultCandidates returns the candidate roster loaded by InitializeElectionData.
// Tallies start at zero; timestamps are set by the caller.
func DefaultCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "1", Name: "Jeevika Singh", Standard: "VIII", House: models.HouseRed, Photo: "1.jpeg", Emoji: emojiStudentF},
		{ID: "2", Name: "Mohit Yadav", Standard: "VIII", House: models.HouseRed, Photo: "2.jpeg", Emoji: emojiStudentM},
		{ID: "3", Name: "Mansi Upadhyay", Standard: "VII", House: models.HouseRed, Photo: "3.jpeg", Emoji: emojiStudentF},
		{ID: "4", Name: "Khushi Yadav", Standard: "VIII", House: models.HouseRed, Photo: "4.jpeg", Emoji: emojiStudentF},
		{ID: "5", Name: "Chinmay Parte", Standard: "IX", House: models.HouseRed, Photo: "5.jpeg", Emoji: emojiStudentM},
		{ID: "6", Name: "Suhani Maurya", Standard: "IX", House: models.HouseRed, Photo: "6.jpg", Emoji: emojiStudentF},
		{ID: "7", Name: "Vishal Pandit", Standard: "IX", House: models.HouseRed, Photo: "7.jpg", Emoji: emojiStudentM},
		{ID: "8", Name: "Shivam Gupta", Standard: "IX", House: models.HouseRed, Photo: "8.jpg", Emoji: emojiStudentM},

		{ID: "9", Name: "Rimsha Vishwakarma", Standard: "VIII", House: models.HouseYellow, Photo: "9.jpeg", Emoji: emojiStudentF},
		{ID: "10", Name: "Ananya Singh", Standard: "IX", House: models.HouseYellow, Photo: "10.jpeg", Emoji: emojiStudentF},
		{ID: "11", Name: "Pratik Sharma", Standard: "IX", House: models.HouseYellow, Photo: "11.jpeg", Emoji: emojiStudentM},
		{ID: "12", Name: "Shreyansh Sharma", Standard: "VIII", House: models.HouseYellow, Photo: "12.jpeg", Emoji: emojiStudentM},
		{ID: "13", Name: "Shivam Yadav", Standard: "VIII", House: models.HouseYellow, Photo: "13.jpeg", Emoji: emojiStudentM},
		{ID: "14", Name: "Shreya Yadav", Standard: "VIII", House: models.HouseYellow, Photo: "14.jpeg", Emoji: emojiStudentF},
		{ID: "15", Name: "Lakshmi Yadav", Standard: "VIII", House: models.HouseYellow, Photo: "15.jpeg", Emoji: emojiStudentF},
		{ID: "16", Name: "Bhumi Sah", Standard: "IX", House: models.HouseYellow, Photo: "16.jpeg", Emoji: emojiStudentF},

		{ID: "17", Name: "Vishal Parihariya", Standard: "VIII", House: models.HouseBlue, Photo: "17.jpg", Emoji: emojiStudentM},
		{ID: "18", Name: "Rudra Rane", Standard: "IX", House: models.HouseBlue, Photo: "18.jpg", Emoji: emojiStudentM},
		{ID: "19", Name: "Versha Kanojiya", Standard: "IX", House: models.HouseBlue, Photo: "19.jpeg", Emoji: emojiStudentF},
		{ID: "20", Name: "Pallavi Singh", Standard: "VIII", House: models.HouseBlue, Photo: "20.jpeg", Emoji: emojiStudentF},
		{ID: "21", Name: "Krishna Yadav", Standard: "IX", House: models.HouseBlue, Photo: "21.jpg", Emoji: emojiStudentM},
		{ID: "22", Name: "Ronak Maurya", Standard: "IX", House: models.HouseBlue, Photo: "22.jpeg", Emoji: emojiStudentM},
		{ID: "23", Name: "Lokesh Sonawane", Standard: "IX", House: models.HouseBlue, Photo: "23.jpg", Emoji: emojiStudentM},
		{ID: "24", Name: "Sandesh Das", Standard: "IX", House: models.HouseBlue, Photo: "24.jpg", Emoji: emojiStudentM},
		{ID: "25", Name: "Prashant Pasi", Standard: "IX", House: models.HouseBlue, Photo: "25.jpg", Emoji: emojiStudentM},
		{ID: "26", Name: "Aadarsh Barawal", Standard: "VIII", House: models.HouseBlue, Photo: "26.jpeg", Emoji: emojiStudentM},
		{ID: "27", Name: "Divya Singh", Standard: "VIII", House: models.HouseBlue, Photo: "27.jpeg", Emoji: emojiStudentF},
		{ID: "28", Name: "Aarushi Sharma", Standard: "VIII", House: models.HouseBlue, Photo: "28.jpeg", Emoji: emojiStudentF},

		{ID: "29", Name: "Janvi Singh", Standard: "VIII", House: models.HouseGreen, Photo: "29.jpeg", Emoji: emojiStudentF},
		{ID: "30", Name: "Archana Yadav", Standard: "VIII", House: models.HouseGreen, Photo: "30.jpeg", Emoji: emojiStudentF},
		{ID: "31", Name: "Madhav Sharma", Standard: "IX", House: models.HouseGreen, Photo: "31.jpg", Emoji: emojiStudentM},
		{ID: "32", Name: "Ankit Yadav", Standard: "VIII", House: models.HouseGreen, Photo: "32.jpeg", Emoji: emojiStudentM},
		{ID: "33", Name: "Yatharth Yadav", Standard: "VIII", House: models.HouseGreen, Photo: "33.jpeg", Emoji: emojiStudentM},
		{ID: "34", Name: "Anjali Prajapati", Standard: "VIII", House: models.HouseGreen, Photo: "34.jpeg", Emoji: emojiStudentF},
		{ID: "35", Name: "Aakansha Padvekar", Standard: "IX", House: models.HouseGreen, Photo: "35.jpeg", Emoji: emojiStudentF},
		{ID: "36", Name: "Bhakti Choudhary", Standard: "IX", House: models.HouseGreen, Photo: "36.jpeg", Emoji: emojiStudentF},
	}
}
